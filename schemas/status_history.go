package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StatusChange registra cada movimentação de um lead entre colunas do
// funil, com quem moveu.
type StatusChange struct {
	ID         bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LeadID     bson.ObjectID `json:"lead_id" bson:"lead_id"`
	FromStatus string        `json:"from_status,omitempty" bson:"from_status,omitempty"`
	ToStatus   string        `json:"to_status" bson:"to_status"`
	ChangedBy  string        `json:"changed_by,omitempty" bson:"changed_by,omitempty"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at,omitempty"`
}
