package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	LEAD_STATUS_NOVO        = "Novo"
	LEAD_STATUS_ATENDIMENTO = "Atendimento"
	LEAD_STATUS_ORCAMENTO   = "Orçamento"
	LEAD_STATUS_FECHADO     = "Fechado"
	LEAD_STATUS_PERDIDO     = "Perdido"
	LEAD_STATUS_REMARKETING = "Remarketing"

	LEAD_CONEXAO_BAIXA = "Baixa"
	LEAD_CONEXAO_MEDIA = "Média"
	LEAD_CONEXAO_ALTA  = "Alta"
)

// LeadStatuses é a ordem canônica do funil. As agregações e o quadro
// kanban dependem dessa ordem.
var LeadStatuses = []string{
	LEAD_STATUS_NOVO,
	LEAD_STATUS_ATENDIMENTO,
	LEAD_STATUS_ORCAMENTO,
	LEAD_STATUS_FECHADO,
	LEAD_STATUS_PERDIDO,
	LEAD_STATUS_REMARKETING,
}

var LeadOrigins = []string{
	"WhatsApp",
	"Instagram",
	"Facebook",
	"Google Ads",
	"Indicação",
	"Outro",
}

func IsValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidLeadOrigin(origin string) bool {
	for _, o := range LeadOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

type Lead struct {
	ID              bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OldID           string        `json:"old_id,omitempty" bson:"old_id,omitempty"`
	Name            string        `json:"name,omitempty" bson:"name,omitempty"`
	Email           string        `json:"email,omitempty" bson:"email,omitempty"`
	ContactPhone    string        `json:"contact_phone,omitempty" bson:"contact_phone,omitempty"`
	LastCity        string        `json:"last_city,omitempty" bson:"last_city,omitempty"`
	Source          string        `json:"source,omitempty" bson:"source,omitempty"`
	Status          string        `json:"status,omitempty" bson:"status,omitempty"`
	Value           float64       `json:"value,omitempty" bson:"value,omitempty"`
	ConnectionLevel string        `json:"connection_level,omitempty" bson:"connection_level,omitempty"`
	OwnerID         bson.ObjectID `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	Notes           string        `json:"notes,omitempty" bson:"notes,omitempty"`
	IsVisible       bool          `json:"is_visible" bson:"is_visible"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at,omitempty"`
	LastMessageAt   time.Time     `json:"last_message_at,omitempty" bson:"last_message_at,omitempty"`
}

// LeadDetails é a linha achatada servida pelas listagens: o lead mais o
// nome do vendedor responsável resolvido via $lookup.
type LeadDetails struct {
	Lead      `bson:",inline"`
	OwnerName string `json:"owner_name,omitempty" bson:"owner_name,omitempty"`
}
