package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Opportunity guarda o valor e o nível de conexão negociados com um lead.
type Opportunity struct {
	ID              bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LeadID          bson.ObjectID `json:"lead_id" bson:"lead_id"`
	Value           float64       `json:"value,omitempty" bson:"value,omitempty"`
	ConnectionLevel string        `json:"connection_level,omitempty" bson:"connection_level,omitempty"`
	Status          string        `json:"status,omitempty" bson:"status,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at,omitempty"`
}
