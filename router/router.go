// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/word-sprint/cliparse"
	"github.com/danielhkuo/word-sprint/handlers"
	"github.com/danielhkuo/word-sprint/middleware"
	"github.com/danielhkuo/word-sprint/notify"
	"github.com/danielhkuo/word-sprint/sprint"
)

func NewRouter(svc *sprint.Service, messages handlers.MessageHandler, replier notify.Replier, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sprintsHandler := handlers.NewSprintsHandler(svc)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Telegram updates, only when the bot is not long polling
	if cfg.UseWebhook() {
		webhookHandler := handlers.NewWebhookHandler(messages, replier, cfg)
		mux.HandleFunc("POST /webhook", middleware.WithLogging(webhookHandler.Receive))
	}

	// Sprint info (public, read-only)
	listSprints := middleware.CORS(middleware.WithLogging(sprintsHandler.ListActive))
	getSprint := middleware.CORS(middleware.WithLogging(sprintsHandler.Get))
	mux.HandleFunc("GET /sprints", listSprints)
	mux.HandleFunc("OPTIONS /sprints", listSprints)
	mux.HandleFunc("GET /sprints/{id}", getSprint)
	mux.HandleFunc("OPTIONS /sprints/{id}", getSprint)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("word-sprint bot"))
	})

	return mux
}
