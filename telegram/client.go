// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package telegram adapts the Bot API client to the bot's transport-neutral
// types.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/word-sprint/models"
	"github.com/danielhkuo/word-sprint/notify"
)

// Updates handled at once in polling mode
const pollWorkers = 8

// long-poll timeout in seconds
const pollTimeout = 60

// defaultHTTPClient outlives one long-poll round trip.
func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: (pollTimeout + 15) * time.Second}
}

// Handler processes one inbound message. Replies go through the Client.
type Handler func(ctx context.Context, msg models.InboundMessage)

// Client sends messages and documents through the Bot API. It implements
// notify.Replier.
type Client struct {
	api *tgbotapi.BotAPI
}

// New authenticates with the Bot API using token.
func New(token string, debug bool) (*Client, error) {
	return NewWithEndpoint(token, tgbotapi.APIEndpoint, nil, debug)
}

// NewWithEndpoint is New against a custom API endpoint, e.g. a local Bot API
// server. endpoint takes the token and method as its two %s verbs.
func NewWithEndpoint(token, endpoint string, client tgbotapi.HTTPClient, debug bool) (*Client, error) {
	if client == nil {
		client = defaultHTTPClient()
	}
	tgbotapi.SetLogger(slogLogger{})

	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	api.Debug = debug

	slog.Info("telegram authorized", "bot", api.Self.UserName)
	return &Client{api: api}, nil
}

// Username is the bot's @handle without the @.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

func (c *Client) Notify(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("%w: send message to %d: %w", notify.ErrTransport, chatID, err)
	}
	return nil
}

func (c *Client) SendFile(_ context.Context, chatID int64, name string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := c.api.Send(doc); err != nil {
		return fmt.Errorf("%w: send document to %d: %w", notify.ErrTransport, chatID, err)
	}
	return nil
}

// SetWebhook points Telegram at url. Every delivery carries secret in the
// X-Telegram-Bot-Api-Secret-Token header.
func (c *Client) SetWebhook(url, secret string) error {
	params := tgbotapi.Params{}
	params["url"] = url
	params.AddNonEmpty("secret_token", secret)
	params["allowed_updates"] = `["message"]`

	if _, err := c.api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	slog.Info("webhook registered", "url", url)
	return nil
}

// DeleteWebhook switches the bot back to long polling.
func (c *Client) DeleteWebhook() error {
	if _, err := c.api.MakeRequest("deleteWebhook", tgbotapi.Params{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

// Poll receives updates by long polling until ctx is cancelled. Up to
// pollWorkers messages are handled concurrently.
func (c *Client) Poll(ctx context.Context, handle Handler) error {
	if err := c.DeleteWebhook(); err != nil {
		return err
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	cfg.AllowedUpdates = []string{"message"}
	updates := c.api.GetUpdatesChan(cfg)

	var g errgroup.Group
	g.SetLimit(pollWorkers)
	defer g.Wait()

	slog.Info("polling for updates", "bot", c.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			msg, ok := ToInbound(update)
			if !ok {
				continue
			}
			g.Go(func() error {
				handle(ctx, msg)
				return nil
			})
		}
	}
}

// ToInbound extracts the sender and text of a plain message update. Edits,
// service messages, media without text and messages from bots are skipped.
func ToInbound(update tgbotapi.Update) (models.InboundMessage, bool) {
	m := update.Message
	if m == nil || m.From == nil || m.From.IsBot {
		return models.InboundMessage{}, false
	}
	if strings.TrimSpace(m.Text) == "" {
		return models.InboundMessage{}, false
	}

	return models.InboundMessage{
		SenderID:   m.From.ID,
		SenderName: m.From.UserName,
		Text:       m.Text,
		ReceivedAt: m.Time().UTC(),
	}, true
}

// slogLogger routes the library's log output into slog at debug level.
type slogLogger struct{}

func (slogLogger) Println(v ...interface{}) {
	slog.Debug(strings.TrimSpace(fmt.Sprintln(v...)), "source", "telegram")
}

func (slogLogger) Printf(format string, v ...interface{}) {
	slog.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "telegram")
}
