package chat

import (
	"api/database"
	"api/middlewares"
	"api/schemas"
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ChatWSMessage map[string]any

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatWebSocketHandler mantém uma Session por conexão. O cliente manda
// {"action": "select_lead", "lead_id": "..."} para trocar de conversa e
// {"action": "send", "content": "..."} para enviar. O servidor devolve o
// histórico completo a cada mudança, nunca deltas.
func ChatWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	authUser, _ := middlewares.GetAuthUser(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Não foi possível fazer upgrade para websocket", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	session := NewSession(database.SharedRedis(), func(ctx context.Context, leadID bson.ObjectID, content string) error {
		return SendMessage(ctx, leadID, content, authUser.Name)
	})
	defer session.Close()

	var writeMu sync.Mutex
	writeJSON := func(msg ChatWSMessage) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(msg); err != nil {
			conn.Close()
		}
	}

	session.OnChange(func(messages []schemas.ChatMessage) {
		if messages == nil {
			messages = []schemas.ChatMessage{}
		}
		writeJSON(ChatWSMessage{
			"type":     "messages",
			"lead_id":  session.LeadID(),
			"messages": messages,
		})
	})

	ctx := context.Background()
	for {
		msg := ChatWSMessage{}
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		action, _ := msg["action"].(string)
		switch action {
		case "select_lead":
			leadID, _ := msg["lead_id"].(string)
			if err := session.SetLead(ctx, leadID); err != nil {
				writeJSON(ChatWSMessage{"type": "error", "message": "Lead inválido"})
			}
		case "send":
			content, _ := msg["content"].(string)
			if err := session.Send(ctx, content); err != nil {
				writeJSON(ChatWSMessage{"type": "error", "message": err.Error()})
			}
		default:
			log.Printf("[Chat] Ação desconhecida no websocket: %q", action)
		}
	}
}
