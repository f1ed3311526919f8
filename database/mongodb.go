package database

import (
	"api/utils"
	"os"
	"time"
)

const (
	MONGO_TIMEOUT                  = 20 * time.Second
	COLLECTION_LEADS               = "leads"
	COLLECTION_OPPORTUNITIES       = "opportunities"
	COLLECTION_MESSAGE_HISTORY     = "message_history"
	COLLECTION_USERS               = "users"
	COLLECTION_LEAD_STATUS_HISTORY = "lead_status_history"
	COLLECTION_UI_PREFERENCES      = "ui_preferences"
)

func GetDB() string {
	environment := os.Getenv(utils.ENV)

	if environment == utils.ENV_RELEASE {
		return "production"
	}

	if environment == utils.ENV_HOMOLOG {
		return "homolog"
	}

	if environment == utils.ENV_DEVELOPMENT {
		return "development"
	}

	panic("[MongoDB] Invalid DB name")
}
