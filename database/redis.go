package database

import (
	"api/utils"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Canais do feed de mudanças. Quem escreve em leads/mensagens publica uma
// notificação (sem payload de diff); quem assina refaz a busca completa.
const (
	CHANNEL_LEADS_CHANGES = "crm:leads:changes"

	chatChannelPrefix = "crm:chat:"
)

func ChatChannel(leadID string) string {
	return chatChannelPrefix + leadID
}

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

func SharedRedis() *redis.Client {
	redisOnce.Do(func() {
		redisURI := os.Getenv(utils.REDIS_URI)
		opts, err := redis.ParseURL(redisURI)
		if err != nil {
			panic("[Redis] URI inválida: " + err.Error())
		}
		redisClient = redis.NewClient(opts)
	})
	return redisClient
}
