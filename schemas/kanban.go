package schemas

// KanbanColumn é um balde visual mapeado 1:1 para um status de lead. A cor
// é preferência local de cada usuário, nunca sincronizada entre contas.
type KanbanColumn struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Color string `json:"color" bson:"color"`
}

func DefaultKanbanColumns() []KanbanColumn {
	return []KanbanColumn{
		{ID: LEAD_STATUS_NOVO, Name: LEAD_STATUS_NOVO, Color: "#3b82f6"},
		{ID: LEAD_STATUS_ATENDIMENTO, Name: LEAD_STATUS_ATENDIMENTO, Color: "#f59e0b"},
		{ID: LEAD_STATUS_ORCAMENTO, Name: LEAD_STATUS_ORCAMENTO, Color: "#8b5cf6"},
		{ID: LEAD_STATUS_FECHADO, Name: LEAD_STATUS_FECHADO, Color: "#10b981"},
		{ID: LEAD_STATUS_PERDIDO, Name: LEAD_STATUS_PERDIDO, Color: "#ef4444"},
		{ID: LEAD_STATUS_REMARKETING, Name: LEAD_STATUS_REMARKETING, Color: "#6366f1"},
	}
}
