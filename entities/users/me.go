package users

import (
	"api/middlewares"
	"api/utils"
	"net/http"
)

// Me devolve o usuário autenticado com o papel resolvido. O front usa
// essa resposta para decidir entre o painel e o modal de aprovação
// pendente.
func Me(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middlewares.GetAuthUser(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Usuário não autenticado", nil, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", authUser, 0)
}
