package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MESSAGE_DIRECTION_INBOUND  = "inbound"
	MESSAGE_DIRECTION_OUTBOUND = "outbound"

	MESSAGE_DIRECTION_CODE_INBOUND  = 1
	MESSAGE_DIRECTION_CODE_OUTBOUND = 2
)

// ChatMessage é imutável depois de gravada. A listagem é sempre por
// sent_at ascendente.
type ChatMessage struct {
	ID            bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LeadID        bson.ObjectID `json:"lead_id" bson:"lead_id"`
	Content       string        `json:"content" bson:"content"`
	Direction     string        `json:"direction" bson:"direction"`
	DirectionCode int           `json:"direction_code" bson:"direction_code"`
	SenderName    string        `json:"sender_name,omitempty" bson:"sender_name,omitempty"`
	SentAt        time.Time     `json:"sent_at" bson:"sent_at"`
}

func DirectionCode(direction string) int {
	if direction == MESSAGE_DIRECTION_OUTBOUND {
		return MESSAGE_DIRECTION_CODE_OUTBOUND
	}
	return MESSAGE_DIRECTION_CODE_INBOUND
}
