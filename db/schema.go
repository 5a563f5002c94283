// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	var schema string
	switch dialect {
	case Postgres:
		schema = postgresSchema
	case SQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("unsupported database type %q", dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id BIGINT PRIMARY KEY,
    username TEXT,
    joined_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_joined_at ON users(joined_at);

-- Sprints
CREATE TABLE IF NOT EXISTS sprints (
    id BIGSERIAL PRIMARY KEY,
    theme TEXT NOT NULL CHECK (theme <> ''),
    duration_days INTEGER NOT NULL CHECK (duration_days IN (1, 7, 30)),
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed')),
    started_at TIMESTAMPTZ NOT NULL,
    ends_at TIMESTAMPTZ NOT NULL,
    completed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_sprints_status ON sprints(status);

-- Submissions (one per user per sprint)
CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    sprint_id BIGINT NOT NULL REFERENCES sprints(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    language TEXT NOT NULL,
    submitted_at TIMESTAMPTZ NOT NULL,
    UNIQUE (user_id, sprint_id)
);

CREATE INDEX IF NOT EXISTS idx_submissions_sprint_id ON submissions(sprint_id, submitted_at);
CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    username TEXT,
    joined_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_joined_at ON users(joined_at);

CREATE TABLE IF NOT EXISTS sprints (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    theme TEXT NOT NULL CHECK (theme <> ''),
    duration_days INTEGER NOT NULL CHECK (duration_days IN (1, 7, 30)),
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed')),
    started_at TIMESTAMP NOT NULL,
    ends_at TIMESTAMP NOT NULL,
    completed_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sprints_status ON sprints(status);

CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id),
    sprint_id INTEGER NOT NULL REFERENCES sprints(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    language TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, sprint_id)
);

CREATE INDEX IF NOT EXISTS idx_submissions_sprint_id ON submissions(sprint_id, submitted_at);
CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at);
`
