// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danielhkuo/word-sprint/auth"
	"github.com/danielhkuo/word-sprint/cliparse"
	"github.com/danielhkuo/word-sprint/middleware"
	"github.com/danielhkuo/word-sprint/models"
	"github.com/danielhkuo/word-sprint/notify"
	"github.com/danielhkuo/word-sprint/telegram"
)

// SecretHeader carries the secret token Telegram sends with every webhook call.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// MessageHandler processes one inbound chat message. *bot.Dispatcher
// implements it.
type MessageHandler interface {
	Handle(ctx context.Context, msg models.InboundMessage, r notify.Replier)
}

type WebhookHandler struct {
	messages MessageHandler
	replier  notify.Replier
	secret   string
}

func NewWebhookHandler(messages MessageHandler, replier notify.Replier, cfg cliparse.Config) *WebhookHandler {
	return &WebhookHandler{messages: messages, replier: replier, secret: cfg.WebhookSecret}
}

// Receive handles POST /webhook
// Updates that carry no plain text message are acknowledged and dropped.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateSecret(r.Header.Get(SecretHeader), h.secret); err != nil {
		slog.Warn("webhook call with bad secret", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid secret token")
		return
	}

	var update tgbotapi.Update
	if err := middleware.ParseJSONBody(r, &update); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid update")
		return
	}

	msg, ok := telegram.ToInbound(update)
	if !ok {
		slog.Debug("update ignored", "update_id", update.UpdateID)
		w.WriteHeader(http.StatusOK)
		return
	}

	// Telegram retries until it gets a 2xx, so errors inside the handler are
	// reported to the user rather than through the status code.
	h.messages.Handle(r.Context(), msg, h.replier)
	w.WriteHeader(http.StatusOK)
}
