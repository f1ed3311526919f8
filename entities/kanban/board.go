package kanban

import (
	"api/schemas"
)

type BoardColumn struct {
	ID    string                `json:"id"`
	Name  string                `json:"name"`
	Color string                `json:"color"`
	Leads []schemas.LeadDetails `json:"leads"`
}

// GroupByColumn monta o quadro na ordem canônica do funil. Toda coluna
// aparece, mesmo vazia; lead com status desconhecido fica de fora.
func GroupByColumn(leads []schemas.LeadDetails, columns []schemas.KanbanColumn) []BoardColumn {
	if len(columns) == 0 {
		columns = schemas.DefaultKanbanColumns()
	}

	board := make([]BoardColumn, 0, len(columns))
	byStatus := make(map[string][]schemas.LeadDetails)
	for _, lead := range leads {
		byStatus[lead.Status] = append(byStatus[lead.Status], lead)
	}

	for _, column := range columns {
		columnLeads := byStatus[column.ID]
		if columnLeads == nil {
			columnLeads = []schemas.LeadDetails{}
		}
		board = append(board, BoardColumn{
			ID:    column.ID,
			Name:  column.Name,
			Color: column.Color,
			Leads: columnLeads,
		})
	}

	return board
}
