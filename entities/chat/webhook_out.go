package chat

import (
	"api/middlewares"
	"api/utils"
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

type outboundWebhookPayload struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

// sendToChatWebhook dispara a mensagem para o webhook externo de envio.
// É melhor esforço: falha aqui não impede a gravação da mensagem, só é
// logada e contada.
func sendToChatWebhook(phone, message string) {
	webhookURL := os.Getenv(utils.CHAT_WEBHOOK_URL)
	if webhookURL == "" {
		return
	}

	payload := outboundWebhookPayload{
		Number:  utils.NormalizePhone(phone),
		Message: message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Chat] Erro ao serializar payload do webhook: %v", err)
		middlewares.RecordWebhookError()
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Chat] Erro silencioso no webhook: %v", err)
		middlewares.RecordWebhookError()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("[Chat] Webhook respondeu status %d", resp.StatusCode)
		middlewares.RecordWebhookError()
	}
}
