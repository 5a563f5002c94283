// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers of the word-sprint bot.

# Handler Types

  - WebhookHandler: receives Telegram updates when the bot runs in webhook mode
  - SprintsHandler: read-only JSON view of sprints

# Webhook

	POST /webhook → Receive

Telegram sends the configured secret in the X-Telegram-Bot-Api-Secret-Token
header; calls without it get 401. The update is converted to a
models.InboundMessage and handed to a MessageHandler (normally
*bot.Dispatcher), which replies through the bot API. Updates without a
plain text message are acknowledged with 200 and dropped.

# Sprints

	GET /sprints      → ListActive
	GET /sprints/{id} → Get (sprint plus submission count)

Submitted words are never exposed over HTTP; admins export them with
/get_words in the chat.
*/
package handlers
