package preferences

import (
	"api/database"
	"api/middlewares"
	"api/utils"
	"context"
	"net/http"
)

// GetOne devolve as preferências do usuário autenticado, preenchendo os
// padrões quando não há nada salvo.
func GetOne(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middlewares.GetAuthUser(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Usuário não autenticado", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	shell := NewShell(NewMongoStore(), authUser.ID)
	if err := shell.Load(ctx); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_PREFERENCES_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", shell.Preferences(), 0)
}
