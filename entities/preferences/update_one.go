package preferences

import (
	"api/database"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

type UpdatePreferencesRequest struct {
	Theme            *string                `json:"theme,omitempty"`
	PeriodFilter     *string                `json:"period_filter,omitempty"`
	CustomRange      *schemas.CustomRange   `json:"custom_range,omitempty"`
	SearchQuery      *string                `json:"search_query,omitempty"`
	SidebarCollapsed *bool                  `json:"sidebar_collapsed,omitempty"`
	KanbanColumns    []schemas.KanbanColumn `json:"kanban_columns,omitempty"`
}

// UpdateOne aplica mudanças parciais nas preferências. Campos ausentes
// ficam como estão; cada campo presente passa pela validação do Shell.
func UpdateOne(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middlewares.GetAuthUser(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Usuário não autenticado", nil, 0)
		return
	}

	reqBody := UpdatePreferencesRequest{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.PREFERENCES_INVALID_REQUEST_DATA)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	shell := NewShell(NewMongoStore(), authUser.ID)
	if err := shell.Load(ctx); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_PREFERENCES_IN_MONGODB)
		return
	}

	var err error

	if reqBody.Theme != nil {
		err = shell.SetTheme(ctx, *reqBody.Theme)
	}
	if err == nil && reqBody.PeriodFilter != nil {
		custom := shell.Preferences().CustomRange
		if reqBody.CustomRange != nil {
			custom = *reqBody.CustomRange
		}
		err = shell.SetPeriodFilter(ctx, *reqBody.PeriodFilter, custom)
	}
	if err == nil && reqBody.SearchQuery != nil {
		err = shell.SetSearchQuery(ctx, *reqBody.SearchQuery)
	}
	if err == nil && reqBody.SidebarCollapsed != nil && *reqBody.SidebarCollapsed != shell.Preferences().SidebarCollapsed {
		err = shell.ToggleSidebar(ctx)
	}
	if err == nil && reqBody.KanbanColumns != nil {
		err = shell.SetKanbanColumns(ctx, reqBody.KanbanColumns)
	}

	switch {
	case err == nil:
		utils.SendResponse(w, http.StatusOK, "", shell.Preferences(), 0)
	case errors.Is(err, ErrInvalidTheme), errors.Is(err, ErrInvalidPeriod), errors.Is(err, ErrInvalidColumn):
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
	default:
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_SAVE_PREFERENCES_IN_MONGODB)
	}
}
