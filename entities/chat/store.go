package chat

import (
	"api/database"
	"api/schemas"
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNoLeadSelected = errors.New("nenhum lead selecionado")
	ErrEmptyMessage   = errors.New("mensagem vazia")
)

// Session é o estado de conversa de uma conexão. Segue um lead por vez:
// trocar de lead derruba a assinatura anterior e abre outra no canal do
// novo lead. Cada evento do canal dispara uma recarga completa do
// histórico, sem patch incremental.
type Session struct {
	fetch     func(ctx context.Context, leadID bson.ObjectID) ([]schemas.ChatMessage, error)
	subscribe func(ctx context.Context, leadID string) (<-chan struct{}, func() error, error)
	send      func(ctx context.Context, leadID bson.ObjectID, content string) error

	mu       sync.RWMutex
	leadID   *bson.ObjectID
	messages []schemas.ChatMessage
	loading  bool

	onChange func([]schemas.ChatMessage)

	cancel   context.CancelFunc
	closeSub func() error
	done     chan struct{}
}

func NewSession(rdb *redis.Client, send func(ctx context.Context, leadID bson.ObjectID, content string) error) *Session {
	return &Session{
		fetch: FetchMessages,
		send:  send,
		subscribe: func(ctx context.Context, leadID string) (<-chan struct{}, func() error, error) {
			pubsub := rdb.Subscribe(ctx, database.ChatChannel(leadID))
			if _, err := pubsub.Receive(ctx); err != nil {
				pubsub.Close()
				return nil, nil, err
			}

			events := make(chan struct{})
			go func() {
				defer close(events)
				for range pubsub.Channel() {
					select {
					case events <- struct{}{}:
					case <-ctx.Done():
						return
					}
				}
			}()

			return events, pubsub.Close, nil
		},
	}
}

// OnChange registra o único ouvinte da sessão, chamado após cada recarga.
func (s *Session) OnChange(fn func([]schemas.ChatMessage)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// SetLead troca o lead acompanhado. Lead vazio limpa o histórico na hora,
// sem ida ao banco; lead novo busca o histórico e assina o canal dele.
func (s *Session) SetLead(ctx context.Context, leadID string) error {
	s.stopFollowing()

	if leadID == "" {
		s.mu.Lock()
		s.leadID = nil
		s.messages = nil
		s.loading = false
		fn := s.onChange
		s.mu.Unlock()

		if fn != nil {
			fn(nil)
		}
		return nil
	}

	oid, err := bson.ObjectIDFromHex(leadID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.mu.Lock()
	s.leadID = &oid
	s.loading = true
	s.mu.Unlock()

	s.refetch(ctx, oid)

	events, closeSub, err := s.subscribe(ctx, leadID)
	if err != nil {
		cancel()
		close(s.done)
		return err
	}
	s.closeSub = closeSub

	go func() {
		defer close(s.done)
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
				s.refetch(ctx, oid)
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Send grava uma mensagem no lead acompanhado. A lista local não é
// atualizada aqui: a mensagem volta pelo canal como qualquer outra.
func (s *Session) Send(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}

	s.mu.RLock()
	leadID := s.leadID
	s.mu.RUnlock()

	if leadID == nil {
		return ErrNoLeadSelected
	}

	return s.send(ctx, *leadID, content)
}

func (s *Session) Messages() []schemas.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]schemas.ChatMessage, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) LeadID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.leadID == nil {
		return ""
	}
	return s.leadID.Hex()
}

func (s *Session) Close() {
	s.stopFollowing()
}

func (s *Session) refetch(ctx context.Context, leadID bson.ObjectID) {
	messages, err := s.fetch(ctx, leadID)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		log.Printf("[Chat] Erro ao recarregar mensagens do lead %s: %v", leadID.Hex(), err)
		return
	}
	if s.leadID == nil || *s.leadID != leadID {
		s.mu.Unlock()
		return
	}
	s.messages = messages
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(messages)
	}
}

func (s *Session) stopFollowing() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.closeSub != nil {
		if err := s.closeSub(); err != nil {
			log.Printf("[Chat] Erro ao encerrar assinatura: %v", err)
		}
		s.closeSub = nil
	}
	if s.done != nil {
		<-s.done
		s.done = nil
	}
}
