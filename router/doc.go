// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes of the word-sprint bot.

# Route Registration

NewRouter creates a configured http.ServeMux:

	mux := router.NewRouter(svc, dispatcher, telegramClient, cfg)

# Endpoints

Health:

	GET /health

Telegram webhook (registered only when WEBHOOK_URL is set):

	POST /webhook - Receive an update

Sprints (public, read-only, CORS enabled):

	GET /sprints      - Active sprints
	GET /sprints/{id} - One sprint and its submission count

In long polling mode the HTTP server only serves health and sprint info.
*/
package router
