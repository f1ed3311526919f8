package utils

import "fmt"

const (
	LEADS_INVALID_REQUEST_DATA = iota
	CANNOT_CONNECT_TO_MONGODB
	CANNOT_FIND_LEADS_IN_MONGODB
	CANNOT_FIND_LEAD_BY_ID_IN_MONGODB
	INVALID_LEAD_ID_FORMAT
	CANNOT_INSERT_LEAD_TO_MONGODB
	CANNOT_UPDATE_LEAD_IN_MONGODB
	OPPORTUNITIES_INVALID_REQUEST_DATA
	CANNOT_INSERT_OPPORTUNITY_TO_MONGODB
	CANNOT_FIND_OPPORTUNITIES_IN_MONGODB
	CHAT_INVALID_REQUEST_DATA
	CANNOT_FIND_MESSAGES_IN_MONGODB
	CANNOT_INSERT_MESSAGE_TO_MONGODB
	USERS_INVALID_REQUEST_DATA
	CANNOT_FIND_USERS_IN_MONGODB
	CANNOT_UPDATE_USER_IN_MONGODB
	INVALID_USER_ID_FORMAT
	PREFERENCES_INVALID_REQUEST_DATA
	CANNOT_SAVE_PREFERENCES_IN_MONGODB
	CANNOT_FIND_PREFERENCES_IN_MONGODB
	CANNOT_INSERT_STATUS_HISTORY_TO_MONGODB
	CANNOT_FIND_STATUS_HISTORY_IN_MONGODB
	ERROR_TO_FIND_IN_MONGODB
	CANNOT_CONNECT_TO_MYSQL
	CANNOT_IMPORT_LEGACY_LEADS
)

func SendInternalError(internalErrorCode int) string {
	return fmt.Sprintf("Ocorreu um erro interno no servidor. Por favor, tente novamene mais tarde (Cod: %d)", internalErrorCode)
}
