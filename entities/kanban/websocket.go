package kanban

import (
	"api/entities/leads"
	"api/middlewares"
	"api/schemas"
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type KanbanWSMessage map[string]any

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var wsClients = make(map[*websocket.Conn]bool)
var wsMutex sync.Mutex

// BroadcastBoard manda o quadro remontado para todas as conexões. É
// chamado a cada recarga da listagem de leads.
func BroadcastBoard(details []schemas.LeadDetails) {
	board := GroupByColumn(details, nil)

	wsMutex.Lock()
	defer wsMutex.Unlock()
	for client := range wsClients {
		err := client.WriteJSON(KanbanWSMessage{"type": "board", "board": board})
		if err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}

// mongoStatusUpdater leva o drop até o banco. O quadro não é atualizado
// aqui: a mudança volta pelo feed e o BroadcastBoard redesenha.
type mongoStatusUpdater struct {
	changedBy string
}

func (u *mongoStatusUpdater) UpdateStatus(ctx context.Context, leadID string, status string) error {
	oid, err := bson.ObjectIDFromHex(leadID)
	if err != nil {
		return err
	}
	return leads.ApplyStatusChange(ctx, oid, status, u.changedBy)
}

// NewWebSocketHandler devolve o handler do quadro. Cada conexão carrega
// o seu próprio DragTracker; o quadro em si é compartilhado via
// broadcast.
func NewWebSocketHandler(store *leads.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authUser, _ := middlewares.GetAuthUser(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "Não foi possível fazer upgrade para websocket", http.StatusInternalServerError)
			return
		}
		defer conn.Close()

		// O quadro inicial sai antes da conexão entrar no hub: depois de
		// registrada, só o BroadcastBoard escreve nela.
		board := GroupByColumn(store.Leads(), nil)
		if err := conn.WriteJSON(KanbanWSMessage{"type": "board", "board": board}); err != nil {
			return
		}

		wsMutex.Lock()
		wsClients[conn] = true
		wsMutex.Unlock()

		tracker := NewDragTracker(&mongoStatusUpdater{changedBy: authUser.Email})

		ctx := context.Background()
		for {
			msg := KanbanWSMessage{}
			if err := conn.ReadJSON(&msg); err != nil {
				break
			}

			action, _ := msg["action"].(string)
			switch action {
			case "start_drag":
				leadID, _ := msg["lead_id"].(string)
				fromColumn, _ := msg["from_column"].(string)
				tracker.StartDrag(leadID, fromColumn)
			case "end_drag":
				tracker.EndDrag()
			case "drop":
				toColumn, _ := msg["to_column"].(string)
				if err := tracker.Drop(ctx, toColumn); err != nil && err != ErrNoActiveDrag {
					log.Printf("[Kanban] Erro ao soltar cartão: %v", err)
				}
			default:
				log.Printf("[Kanban] Ação desconhecida no websocket: %q", action)
			}
		}

		wsMutex.Lock()
		delete(wsClients, conn)
		wsMutex.Unlock()
	}
}
