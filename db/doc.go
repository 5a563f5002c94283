// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Opening

Open connects, pings and creates the schema in one step:

	conn, err := db.Open(db.Postgres, cfg.DatabaseURL)

Two dialects are supported: PostgreSQL (github.com/lib/pq) and SQLite
(modernc.org/sqlite, pure Go). SQLite connections are limited to one open
connection and run with foreign keys enabled.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - users: platform user id, username, joined_at
  - sprints: theme, duration_days, status, started_at, ends_at, completed_at
  - submissions: one row per (user_id, sprint_id)

# Relationships

	users   1──* submissions
	sprints 1──* submissions

The UNIQUE (user_id, sprint_id) constraint on submissions is what keeps two
concurrent submissions for the same pair from both succeeding.
*/
package db
