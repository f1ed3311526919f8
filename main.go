package main

import (
	"api/database"
	"api/entities/chat"
	"api/entities/kanban"
	"api/entities/leads"
	"api/entities/opportunities"
	"api/entities/preferences"
	"api/entities/report"
	"api/entities/users"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	utils.LoadEnvVariables()

	env := os.Getenv(utils.ENV)
	if env == utils.ENV_RELEASE {
		fmt.Printf("\033[1;31;47m[ATENÇÃO] Rodando em ambiente de PRODUÇÃO!\033[0m\n")
	} else {
		fmt.Printf("[INFO] Ambiente atual: %s\n", env)
	}

	store := leads.NewStore(database.SharedRedis())
	store.OnUpdate(func(details []schemas.LeadDetails) {
		kanban.BroadcastBoard(details)
	})
	if err := store.Start(context.Background()); err != nil {
		fmt.Printf("[ERRO] Não foi possível assinar o feed de mudanças: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// As rotas de websocket ficam fora do Metrics porque o gravador de
	// status não implementa http.Hijacker.
	protected := func(handler http.HandlerFunc) http.Handler {
		return middlewares.Metrics(middlewares.Auth(middlewares.RequireApproved(handler)))
	}
	adminOnly := func(handler http.HandlerFunc) http.Handler {
		return middlewares.Metrics(middlewares.Auth(middlewares.RequireAdmin(handler)))
	}

	mux := http.NewServeMux()

	mux.Handle("GET /v1/leads", protected(leads.GetAll))
	mux.Handle("GET /v1/leads/export", protected(leads.ExportCSV))
	mux.Handle("GET /v1/leads/{id}", protected(leads.GetOne))
	mux.Handle("POST /v1/leads", protected(leads.CreateOne))
	mux.Handle("PATCH /v1/leads/{id}", protected(leads.UpdateOne))
	mux.Handle("PATCH /v1/leads/{id}/status", protected(leads.UpdateStatus))
	mux.Handle("DELETE /v1/leads/{id}", protected(leads.DeleteOne))
	mux.Handle("GET /v1/leads/{id}/status-history", protected(leads.GetStatusHistory))
	mux.Handle("GET /v1/leads/{id}/opportunities", protected(opportunities.GetAllByLead))
	mux.Handle("POST /v1/leads/import-legacy", adminOnly(leads.ImportLegacy))

	mux.Handle("POST /v1/opportunities", protected(opportunities.CreateOne))

	mux.Handle("GET /v1/chat/messages", protected(chat.GetChatMessages))
	mux.Handle("POST /v1/chat/messages", protected(chat.CreateOneMessage))
	mux.Handle("POST /v1/chat/webhook", http.HandlerFunc(chat.CreateOneWebhook))

	mux.Handle("GET /v1/kanban/board", protected(kanban.NewGetBoard(store)))

	mux.Handle("GET /v1/reports", protected(report.GetByQuery))

	mux.Handle("GET /v1/users/me", middlewares.Metrics(middlewares.Auth(http.HandlerFunc(users.Me))))
	mux.Handle("GET /v1/users", adminOnly(users.GetAll))
	mux.Handle("PATCH /v1/users/{id}/role", adminOnly(users.UpdateRole))

	mux.Handle("GET /v1/preferences", protected(preferences.GetOne))
	mux.Handle("PUT /v1/preferences", protected(preferences.UpdateOne))

	mux.Handle("/v1/ws/chat", middlewares.Auth(middlewares.RequireApproved(http.HandlerFunc(chat.ChatWebSocketHandler))))
	mux.Handle("/v1/ws/kanban", middlewares.Auth(middlewares.RequireApproved(kanban.NewWebSocketHandler(store))))

	mux.Handle("GET /metrics", promhttp.Handler())

	fmt.Printf("Servidor iniciado na porta %s às %s\n", os.Getenv(utils.PORT), time.Now().Format("2006-01-02 15:04:05"))
	http.ListenAndServe(fmt.Sprintf(":%s", os.Getenv(utils.PORT)), middlewares.SecurityHeaders(middlewares.Cors(mux)))
}
