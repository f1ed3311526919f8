package middlewares

import (
	"api/database"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type contextKey string

const UserContextKey = contextKey("crm_user")

// AuthUser é o usuário autenticado anexado ao contexto da requisição: a
// identidade validada no provedor mais a linha do CRM (role inclusa).
type AuthUser struct {
	ID         bson.ObjectID `json:"id,omitempty"`
	AuthUserID string        `json:"auth_user_id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Role       string        `json:"role"`
}

type identityResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Auth valida o token no provedor de identidade e carrega a role do
// usuário na coleção users. Usuário sem linha no CRM entra como NENHUM
// (aguardando aprovação), que não é erro de autenticação.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.SendResponse(w, http.StatusUnauthorized, "Token não informado", nil, 0)
			return
		}

		authURL := os.Getenv(utils.AUTH_API_URL)
		if authURL == "" {
			authURL = "http://localhost:8000"
		}
		userURL := fmt.Sprintf("%s/api/user", authURL)

		req, err := http.NewRequest("GET", userURL, nil)
		if err != nil {
			utils.SendResponse(w, http.StatusInternalServerError, "Erro ao criar requisição de autenticação", nil, 0)
			return
		}
		req.Header.Set("Authorization", token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			utils.SendResponse(w, http.StatusBadGateway, "Erro ao conectar na API de autenticação", nil, 0)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			utils.SendResponse(w, http.StatusUnauthorized, "Token inválido ou usuário não autenticado", nil, 0)
			return
		}

		identity := identityResponse{}
		err = json.NewDecoder(resp.Body).Decode(&identity)
		if err != nil || identity.ID == "" || identity.Email == "" {
			utils.SendResponse(w, http.StatusUnauthorized, "Usuário inválido retornado pela autenticação", nil, 0)
			return
		}

		user := AuthUser{
			AuthUserID: identity.ID,
			Name:       identity.Name,
			Email:      identity.Email,
			Role:       schemas.USER_ROLE_NENHUM,
		}

		if crmUser, err := crmUserResolver(r.Context(), identity); err == nil && crmUser != nil {
			user.ID = crmUser.ID
			user.Role = crmUser.Role
			if crmUser.Name != "" {
				user.Name = crmUser.Name
			}
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var crmUserResolver = resolveCrmUser

// resolveCrmUser busca a linha do usuário no CRM e a cria como NENHUM no
// primeiro acesso autenticado, para o cadastro novo aparecer na fila de
// aprovação dos admins.
func resolveCrmUser(ctx context.Context, identity identityResponse) (*schemas.User, error) {
	ctx, cancel := context.WithTimeout(ctx, database.MONGO_TIMEOUT)
	defer cancel()

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_USERS)

	now := time.Now()
	filter := bson.D{{Key: "auth_user_id", Value: identity.ID}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "auth_user_id", Value: identity.ID},
		{Key: "name", Value: identity.Name},
		{Key: "email", Value: identity.Email},
		{Key: "role", Value: schemas.USER_ROLE_NENHUM},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}}}

	findOptions := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	user := &schemas.User{}
	if err := collection.FindOneAndUpdate(ctx, filter, update, findOptions).Decode(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetAuthUser recupera o usuário anexado pelo middleware Auth.
func GetAuthUser(r *http.Request) (AuthUser, bool) {
	user, ok := r.Context().Value(UserContextKey).(AuthUser)
	return user, ok
}

// RequireApproved barra contas ainda não aprovadas (role NENHUM). A
// resposta carrega pending_approval para o front exibir o modal de
// bloqueio em vez de tratar como falha.
func RequireApproved(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetAuthUser(r)
		if !ok {
			utils.SendResponse(w, http.StatusUnauthorized, "Usuário não autenticado", nil, 0)
			return
		}

		if user.Role == schemas.USER_ROLE_NENHUM {
			utils.SendResponse(w, http.StatusForbidden, "Cadastro aguardando aprovação", map[string]any{
				"pending_approval": true,
			}, 0)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin protege as rotas de administração (gestão de roles).
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetAuthUser(r)
		if !ok || user.Role != schemas.USER_ROLE_ADMIN {
			utils.SendResponse(w, http.StatusForbidden, "Acesso restrito a administradores", nil, 0)
			return
		}

		next.ServeHTTP(w, r)
	})
}
