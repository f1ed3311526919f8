package middlewares

import (
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeUserDirectory struct {
	mu      sync.Mutex
	users   map[string]*schemas.User
	inserts int
}

func newFakeUserDirectory() *fakeUserDirectory {
	return &fakeUserDirectory{users: map[string]*schemas.User{}}
}

// resolve imita o upsert por auth_user_id: devolve a linha existente ou
// cria uma nova como NENHUM.
func (d *fakeUserDirectory) resolve(ctx context.Context, identity identityResponse) (*schemas.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if user, ok := d.users[identity.ID]; ok {
		return user, nil
	}

	d.inserts++
	user := &schemas.User{
		ID:         bson.NewObjectID(),
		AuthUserID: identity.ID,
		Name:       identity.Name,
		Email:      identity.Email,
		Role:       schemas.USER_ROLE_NENHUM,
	}
	d.users[identity.ID] = user
	return user, nil
}

func withFakeAuth(t *testing.T, directory *fakeUserDirectory) {
	t.Helper()

	identityServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(identityResponse{ID: "auth-1", Name: "Ana", Email: "ana@exemplo.com"})
	}))
	t.Cleanup(identityServer.Close)
	t.Setenv(utils.AUTH_API_URL, identityServer.URL)

	original := crmUserResolver
	crmUserResolver = directory.resolve
	t.Cleanup(func() { crmUserResolver = original })
}

func TestAuthProvisionsFirstTimeUser(t *testing.T) {
	directory := newFakeUserDirectory()
	withFakeAuth(t, directory)

	var seen AuthUser
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetAuthUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	request := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest("GET", "/v1/leads", nil)
		r.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	t.Run("Primeiro acesso cria a linha como NENHUM", func(t *testing.T) {
		require.Equal(t, http.StatusOK, request().Code)
		assert.Equal(t, schemas.USER_ROLE_NENHUM, seen.Role)
		assert.Equal(t, "auth-1", seen.AuthUserID)
		assert.False(t, seen.ID.IsZero())
		assert.Equal(t, 1, directory.inserts)
	})

	t.Run("Acessos seguintes reaproveitam a linha", func(t *testing.T) {
		firstID := seen.ID
		require.Equal(t, http.StatusOK, request().Code)
		assert.Equal(t, firstID, seen.ID)
		assert.Equal(t, 1, directory.inserts)
	})

	t.Run("Cadastro provisionado fica visível para aprovação", func(t *testing.T) {
		user, err := directory.resolve(context.Background(), identityResponse{ID: "auth-1"})
		require.NoError(t, err)
		assert.Equal(t, schemas.USER_ROLE_NENHUM, user.Role)
	})
}

func TestRequireApprovedBlocksPendingUser(t *testing.T) {
	directory := newFakeUserDirectory()
	withFakeAuth(t, directory)

	handler := Auth(RequireApproved(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	r := httptest.NewRequest("GET", "/v1/leads", nil)
	r.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "pending_approval")
}

func TestRequireApprovedAllowsApprovedUser(t *testing.T) {
	directory := newFakeUserDirectory()
	directory.users["auth-1"] = &schemas.User{
		ID:         bson.NewObjectID(),
		AuthUserID: "auth-1",
		Role:       schemas.USER_ROLE_VENDEDOR,
	}
	withFakeAuth(t, directory)

	handler := Auth(RequireApproved(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	r := httptest.NewRequest("GET", "/v1/leads", nil)
	r.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/v1/leads", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
