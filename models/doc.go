// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, reporting, and response types.

# Domain Types

  - User: a chat participant, created on first contact
  - Sprint: a themed, time-boxed campaign (active or completed)
  - Submission: one user's words for one sprint
  - InboundMessage: sender, text and arrival time of one chat message

# Reporting Types

  - ExportRow: word, user_id, language, submitted_at
  - SprintCount: per-sprint submission total
  - Digest: daily aggregation sent to admins

# Response Types

JSON bodies for the HTTP read API:

  - SprintListResponse: active sprints
  - SprintDetailResponse: one sprint plus its submission count
  - ErrorResponse: error, message

# Constants

Status values:

	StatusActive    = "active"
	StatusCompleted = "completed"

Durations (days): 1, 7, 30.

Supported languages: en, ru, es, fr, de, uk, it.
*/
package models
