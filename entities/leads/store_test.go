package leads

import (
	"api/schemas"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	mu     sync.Mutex
	leads  []schemas.LeadDetails
	err    error
	events chan struct{}
}

func newFakeFeed(leads ...schemas.LeadDetails) *fakeFeed {
	return &fakeFeed{leads: leads, events: make(chan struct{})}
}

func (f *fakeFeed) set(leads []schemas.LeadDetails, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads = leads
	f.err = err
}

func (f *fakeFeed) fetch(ctx context.Context) ([]schemas.LeadDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.leads, f.err
}

func (f *fakeFeed) subscribe(ctx context.Context) (<-chan struct{}, func() error, error) {
	return f.events, func() error { return nil }, nil
}

func newTestStore(feed *fakeFeed) *Store {
	return &Store{fetch: feed.fetch, subscribe: feed.subscribe}
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

func TestStoreRefetchOnEvent(t *testing.T) {
	feed := newFakeFeed(makeLead("Primeiro", time.Now()))
	store := newTestStore(feed)

	require.NoError(t, store.Start(context.Background()))
	defer store.Close()

	assert.Len(t, store.Leads(), 1)
	assert.False(t, store.Loading())

	feed.set([]schemas.LeadDetails{
		makeLead("Primeiro", time.Now()),
		makeLead("Segundo", time.Now()),
	}, nil)
	feed.events <- struct{}{}

	waitFor(t, func() bool { return len(store.Leads()) == 2 })
}

func TestStoreKeepsSnapshotOnError(t *testing.T) {
	feed := newFakeFeed(makeLead("Única", time.Now()))
	store := newTestStore(feed)

	require.NoError(t, store.Start(context.Background()))
	defer store.Close()

	feed.set(nil, errors.New("mongo fora do ar"))
	feed.events <- struct{}{}

	// A recarga falhou; a foto anterior permanece servível.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, store.Leads(), 1)
	assert.Equal(t, "Única", store.Leads()[0].Name)
}

func TestStoreNotifiesListeners(t *testing.T) {
	feed := newFakeFeed()
	store := newTestStore(feed)

	var mu sync.Mutex
	calls := 0
	store.OnUpdate(func(details []schemas.LeadDetails) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	require.NoError(t, store.Start(context.Background()))
	defer store.Close()

	feed.events <- struct{}{}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 2
	})
}
