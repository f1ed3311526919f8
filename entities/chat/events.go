package chat

import (
	"api/database"
	"context"
	"log"
)

// PublishChange avisa o canal de mensagens do lead. Quem está com a
// conversa aberta refaz o histórico completo ao receber.
func PublishChange(ctx context.Context, leadID string) {
	rdb := database.SharedRedis()
	if err := rdb.Publish(ctx, database.ChatChannel(leadID), "changed").Err(); err != nil {
		log.Printf("[Chat] Erro ao publicar mudança do lead %s: %v", leadID, err)
	}
}
