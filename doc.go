// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the word-sprint Telegram bot.

Admins start themed word sprints; every user may send one short answer
(1 to 3 words) per active sprint. Answers are checked for profanity and
must be in English, Russian, Spanish, French, German, Ukrainian or Italian.
Admins export the words as CSV and receive a daily digest.

# Starting the Bot

The bot requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first:

	TELEGRAM_TOKEN=123:abc ADMIN_IDS=1000 DATABASE_URL=file:sprint.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --admin 1000 --admin 2000

# Configuration

Required settings:

  - TELEGRAM_TOKEN (--token): Bot token
  - ADMIN_IDS (--admin): Telegram ids of admins (ADMIN_ID is still read)
  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string

Optional settings:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): HTTP port (default: 3318)
  - WEBHOOK_URL, WEBHOOK_SECRET: receive updates by webhook instead of long polling
  - TIMEZONE (--tz): zone of the daily digest (default: UTC)
  - DIGEST_SCHEDULE (--digest): cron expression (default: midnight)
  - AUTO_EXPIRE: close sprints once their end time passes
  - DEBUG, LOG_FILE: verbose and rotating file logging

# Architecture

  - bot: chat command dispatch and replies
  - sprint: sprint lifecycle and submissions
  - filter: word count, profanity and language checks
  - store: SQL persistence (SQLite or PostgreSQL)
  - report: CSV export and digest formatting
  - notify: fan-out to many chats
  - telegram: Bot API client (polling and webhook)
  - scheduler: daily digest and overdue sweep
  - handlers, router, middleware: HTTP surface
  - auth: admin allow-list and webhook secrets
  - db: connection and schema creation
  - cliparse, logging: configuration and log setup

See package documentation for each component.
*/
package main
