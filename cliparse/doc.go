// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

The Config is built once in main and passed to every component. Nothing else
reads the environment.

# CLI Flags

	-p, --port           Server port (default: 3318)
	-d, --database-url   Database URL
	-t, --database-type  sqlite or postgres (default: sqlite)
	--token              Telegram bot token
	--admin              Admin user ids, comma separated
	--webhook-url        Public webhook URL (empty: long polling)
	--webhook-secret     Webhook secret token
	--tz                 Digest time zone (default: UTC)
	--digest             Digest cron schedule (default: "0 0 * * *")
	--auto-expire        Close sprints after their end time
	--debug              Verbose logging
	--log-file           Rotating log file

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	TELEGRAM_TOKEN  → --token
	ADMIN_IDS       → --admin (ADMIN_ID is accepted for a single admin)
	WEBHOOK_URL     → --webhook-url
	WEBHOOK_SECRET  → --webhook-secret
	TIMEZONE        → --tz
	DIGEST_SCHEDULE → --digest
	AUTO_EXPIRE     → --auto-expire
	DEBUG           → --debug
	LOG_FILE        → --log-file

CLI flags take precedence over environment variables. A .env file is loaded
by LoadDotEnv before parsing; variables already set are not overwritten.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - TELEGRAM_TOKEN must be provided
  - at least one admin id must be provided
  - TIMEZONE must name a known location

When a webhook URL is set without a secret, the secret is derived from the
bot token (see auth.DeriveWebhookSecret).
*/
package cliparse
