package leads

import (
	"api/database"
	"api/schemas"
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store é a réplica em memória da listagem de leads. Busca tudo ao subir,
// refaz a busca completa a cada notificação do feed de mudanças (sem patch
// incremental) e, em caso de erro, segura a última foto boa em vez de
// esvaziar. Buscas sobrepostas se resolvem por "última resposta vence".
type Store struct {
	fetch     func(ctx context.Context) ([]schemas.LeadDetails, error)
	subscribe func(ctx context.Context) (<-chan struct{}, func() error, error)

	mu        sync.RWMutex
	leads     []schemas.LeadDetails
	loading   bool
	listeners []func([]schemas.LeadDetails)

	cancel   context.CancelFunc
	closeSub func() error
	done     chan struct{}
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{
		fetch: FetchDetails,
		subscribe: func(ctx context.Context) (<-chan struct{}, func() error, error) {
			pubsub := rdb.Subscribe(ctx, database.CHANNEL_LEADS_CHANGES)
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

// Start carrega a primeira foto e liga a escuta do feed. Erro na carga
// inicial não é fatal: a loja sobe vazia e tenta de novo no próximo evento.
func (s *Store) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	s.Refetch(ctx)

	events, closeSub, err := s.subscribe(ctx)
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
				s.Refetch(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Refetch substitui a coleção inteira. Falha mantém a foto anterior.
func (s *Store) Refetch(ctx context.Context) {
	details, err := s.fetch(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		log.Printf("[Leads] Erro ao recarregar leads, mantendo foto anterior: %v", err)
		return
	}
	s.leads = details
	listeners := make([]func([]schemas.LeadDetails), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(details)
	}
}

// OnUpdate registra um ouvinte chamado após cada recarga bem-sucedida.
func (s *Store) OnUpdate(fn func([]schemas.LeadDetails)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) Leads() []schemas.LeadDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]schemas.LeadDetails, len(s.leads))
	copy(snapshot, s.leads)
	return snapshot
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Close libera a assinatura do feed e espera o laço de escuta encerrar.
func (s *Store) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.closeSub != nil {
		if err := s.closeSub(); err != nil {
			log.Printf("[Leads] Erro ao encerrar assinatura: %v", err)
		}
	}
	if s.done != nil {
		<-s.done
	}
}
