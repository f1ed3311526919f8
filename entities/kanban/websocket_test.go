package kanban

import (
	"api/entities/leads"
	"api/schemas"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketInitialBoardUnderBroadcast(t *testing.T) {
	store := &leads.Store{}
	server := httptest.NewServer(NewWebSocketHandler(store))
	defer server.Close()

	// Broadcasts rodando durante a conexão: a escrita do quadro inicial
	// não pode concorrer com as escritas do hub na mesma conexão.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		details := []schemas.LeadDetails{
			{Lead: schemas.Lead{Name: "A", Status: schemas.LEAD_STATUS_NOVO}},
		}
		for {
			select {
			case <-stop:
				return
			default:
				BroadcastBoard(details)
				time.Sleep(time.Millisecond)
			}
		}
	}()
	defer func() {
		close(stop)
		wg.Wait()
	}()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < 5; i++ {
		frame := map[string]any{}
		require.NoError(t, conn.ReadJSON(&frame))
		assert.Equal(t, "board", frame["type"])
		assert.NotNil(t, frame["board"])
	}
}
