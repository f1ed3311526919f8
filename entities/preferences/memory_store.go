package preferences

import (
	"api/schemas"
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore guarda as preferências em memória. Serve de armazenamento
// descartável em ambiente de desenvolvimento sem Mongo.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs map[bson.ObjectID]schemas.UIPreferences
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: map[bson.ObjectID]schemas.UIPreferences{}}
}

func (m *MemoryStore) Load(ctx context.Context, userID bson.ObjectID) (schemas.UIPreferences, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefs, ok := m.prefs[userID]
	return prefs, ok, nil
}

func (m *MemoryStore) Save(ctx context.Context, prefs schemas.UIPreferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[prefs.UserID] = prefs
	return nil
}
