package kanban

import (
	"api/entities/leads"
	"api/utils"
	"net/http"
)

// NewGetBoard serve o quadro montado a partir da foto em memória, para o
// primeiro desenho antes do websocket conectar.
func NewGetBoard(store *leads.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board := GroupByColumn(store.Leads(), nil)
		utils.SendResponse(w, http.StatusOK, "", board, 0)
	}
}
