package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	USER_ROLE_NENHUM   = "NENHUM"
	USER_ROLE_VENDEDOR = "VENDEDOR"
	USER_ROLE_ADMIN    = "ADMIN"
)

func IsValidUserRole(role string) bool {
	return role == USER_ROLE_NENHUM || role == USER_ROLE_VENDEDOR || role == USER_ROLE_ADMIN
}

// User é o registro do CRM ligado ao usuário do provedor de identidade.
// Role NENHUM significa cadastro aguardando aprovação de um admin.
type User struct {
	ID         bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthUserID string        `json:"auth_user_id" bson:"auth_user_id"`
	Name       string        `json:"name" bson:"name"`
	Email      string        `json:"email" bson:"email"`
	Role       string        `json:"role" bson:"role"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at"`
}
