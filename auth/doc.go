// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin allow-list and webhook secret helpers.

# Admin Allow-List

Admins are a fixed set of chat user ids taken from configuration:

	admins := auth.NewAdminList(cfg.AdminIDs)
	if !admins.IsAdmin(senderID) {
		// reject
	}

There are no roles or sessions; membership in the list is the only check.

# Webhook Secrets

Telegram echoes a secret in the X-Telegram-Bot-Api-Secret-Token header on
every webhook call. When no secret is configured one is derived from the bot
token with HMAC-SHA256:

	secret := auth.DeriveWebhookSecret(cfg.BotToken, "word-sprint-webhook")
	err := auth.ValidateSecret(r.Header.Get("X-Telegram-Bot-Api-Secret-Token"), secret)

Secrets are URL-safe base64 without padding. Since derivation is
deterministic, the same token always yields the same secret. Comparison uses
hmac.Equal.
*/
package auth
