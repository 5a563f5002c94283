// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Sprint status constants
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Allowed sprint lengths in days
var SprintDurations = []int{1, 7, 30}

// SupportedLanguages lists the ISO 639-1 codes accepted for submissions.
var SupportedLanguages = []string{"en", "ru", "es", "fr", "de", "uk", "it"}

// Domain types

type User struct {
	ID       int64     `json:"id"`
	Username string    `json:"username,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

type Sprint struct {
	ID           int64      `json:"id"`
	Theme        string     `json:"theme"`
	DurationDays int        `json:"duration_days"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	EndsAt       time.Time  `json:"ends_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Active reports whether the sprint still accepts submissions.
func (s Sprint) Active() bool {
	return s.Status == StatusActive
}

type Submission struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	SprintID    int64     `json:"sprint_id"`
	Text        string    `json:"text"`
	Language    string    `json:"language"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// InboundMessage is the transport-neutral form of one incoming chat message.
type InboundMessage struct {
	SenderID   int64
	SenderName string // may be empty
	Text       string
	ReceivedAt time.Time
}

// Reporting types

// ExportRow is one line of a sprint export.
type ExportRow struct {
	Word        string    `json:"word"`
	UserID      int64     `json:"user_id"`
	Language    string    `json:"language"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type SprintCount struct {
	SprintID int64  `json:"sprint_id"`
	Theme    string `json:"theme"`
	Status   string `json:"status"`
	Words    int    `json:"words"`
}

type Digest struct {
	Date     time.Time     `json:"date"` // local midnight the counts start from
	NewUsers int           `json:"new_users"`
	NewWords int           `json:"new_words"`
	Sprints  []SprintCount `json:"sprints"`
}

// Response types

type SprintListResponse struct {
	Sprints []Sprint `json:"sprints"`
}

type SprintDetailResponse struct {
	Sprint      Sprint `json:"sprint"`
	Submissions int    `json:"submissions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
