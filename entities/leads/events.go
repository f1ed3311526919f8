package leads

import (
	"api/database"
	"context"
	"log"
)

// PublishChange avisa o feed de mudanças de leads. Também dispara para
// leads ocultos: o assinante refaz a listagem visível de qualquer forma.
func PublishChange(ctx context.Context) {
	rdb := database.SharedRedis()
	if err := rdb.Publish(ctx, database.CHANNEL_LEADS_CHANGES, "changed").Err(); err != nil {
		log.Printf("[Leads] Erro ao publicar mudança: %v", err)
	}
}
