package chat

import (
	"api/schemas"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeChat struct {
	mu       sync.Mutex
	messages map[string][]schemas.ChatMessage
	events   map[string]chan struct{}
	sent     []string
}

func newFakeChat() *fakeChat {
	return &fakeChat{
		messages: map[string][]schemas.ChatMessage{},
		events:   map[string]chan struct{}{},
	}
}

func (f *fakeChat) eventsFor(leadID string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.events[leadID] == nil {
		f.events[leadID] = make(chan struct{})
	}
	return f.events[leadID]
}

func (f *fakeChat) add(leadID string, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[leadID] = append(f.messages[leadID], schemas.ChatMessage{Content: content, SentAt: time.Now()})
}

func (f *fakeChat) session() *Session {
	return &Session{
		fetch: func(ctx context.Context, leadID bson.ObjectID) ([]schemas.ChatMessage, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.messages[leadID.Hex()], nil
		},
		subscribe: func(ctx context.Context, leadID string) (<-chan struct{}, func() error, error) {
			return f.eventsFor(leadID), func() error { return nil }, nil
		},
		send: func(ctx context.Context, leadID bson.ObjectID, content string) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.sent = append(f.sent, content)
			return nil
		},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condição não atingida a tempo")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSessionFollowsLead(t *testing.T) {
	leadA := bson.NewObjectID()
	leadB := bson.NewObjectID()

	fake := newFakeChat()
	fake.add(leadA.Hex(), "olá")
	fake.add(leadB.Hex(), "oi")
	fake.add(leadB.Hex(), "tudo bem?")

	session := fake.session()
	defer session.Close()

	ctx := context.Background()

	require.NoError(t, session.SetLead(ctx, leadA.Hex()))
	assert.Len(t, session.Messages(), 1)
	assert.Equal(t, leadA.Hex(), session.LeadID())

	// Trocar de lead derruba o histórico anterior e carrega o novo.
	require.NoError(t, session.SetLead(ctx, leadB.Hex()))
	assert.Len(t, session.Messages(), 2)

	fake.add(leadB.Hex(), "nova mensagem")
	fake.eventsFor(leadB.Hex()) <- struct{}{}
	waitFor(t, func() bool { return len(session.Messages()) == 3 })
}

func TestSessionClearsOnEmptyLead(t *testing.T) {
	leadA := bson.NewObjectID()

	fake := newFakeChat()
	fake.add(leadA.Hex(), "olá")

	session := fake.session()
	defer session.Close()

	ctx := context.Background()
	require.NoError(t, session.SetLead(ctx, leadA.Hex()))
	require.NotEmpty(t, session.Messages())

	require.NoError(t, session.SetLead(ctx, ""))
	assert.Empty(t, session.Messages())
	assert.Equal(t, "", session.LeadID())
	assert.False(t, session.Loading())
}

func TestSessionSend(t *testing.T) {
	leadA := bson.NewObjectID()

	fake := newFakeChat()
	session := fake.session()
	defer session.Close()

	ctx := context.Background()

	t.Run("Sem lead selecionado", func(t *testing.T) {
		assert.ErrorIs(t, session.Send(ctx, "olá"), ErrNoLeadSelected)
	})

	require.NoError(t, session.SetLead(ctx, leadA.Hex()))

	t.Run("Conteúdo vazio", func(t *testing.T) {
		assert.ErrorIs(t, session.Send(ctx, "   "), ErrEmptyMessage)
	})

	t.Run("Envio passa pelo gravador", func(t *testing.T) {
		require.NoError(t, session.Send(ctx, "mensagem válida"))
		fake.mu.Lock()
		defer fake.mu.Unlock()
		assert.Equal(t, []string{"mensagem válida"}, fake.sent)
	})
}

func TestSessionRejectsInvalidLeadID(t *testing.T) {
	fake := newFakeChat()
	session := fake.session()
	defer session.Close()

	assert.Error(t, session.SetLead(context.Background(), "não-é-um-id"))
}
