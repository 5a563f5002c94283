// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store persists users, sprints and submissions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/word-sprint/db"
	"github.com/danielhkuo/word-sprint/models"
)

type Store struct {
	db      *sql.DB
	dialect db.Dialect
}

func New(conn *sql.DB, dialect db.Dialect) *Store {
	return &Store{db: conn, dialect: dialect}
}

// forShare locks the sprint row against a concurrent close while a
// submission is inserted. SQLite serialises writers, so it needs no clause.
func (s *Store) forShare() string {
	if s.dialect == db.Postgres {
		return " FOR SHARE"
	}
	return ""
}

// Users

// UpsertUser records a user on first contact and refreshes the username on
// later contacts. An empty username keeps the stored one.
func (s *Store) UpsertUser(ctx context.Context, id int64, username string, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET username = COALESCE(excluded.username, users.username)
	`, id, nullString(username), now.UTC())
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", id, err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	var username sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, joined_at FROM users WHERE id = $1
	`, id).Scan(&u.ID, &username, &u.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	u.Username = username.String
	return u, nil
}

// ListUserIDs returns every known user id in join order.
func (s *Store) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users ORDER BY joined_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Sprints

func (s *Store) CreateSprint(ctx context.Context, theme string, days int, startedAt time.Time) (models.Sprint, error) {
	sp := models.Sprint{
		Theme:        theme,
		DurationDays: days,
		Status:       models.StatusActive,
		StartedAt:    startedAt.UTC(),
		EndsAt:       startedAt.UTC().Add(time.Duration(days) * 24 * time.Hour),
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sprints (theme, duration_days, status, started_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, sp.Theme, sp.DurationDays, sp.Status, sp.StartedAt, sp.EndsAt).Scan(&sp.ID)
	if err != nil {
		return models.Sprint{}, fmt.Errorf("insert sprint: %w", err)
	}
	return sp, nil
}

const sprintColumns = `id, theme, duration_days, status, started_at, ends_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSprint(row rowScanner) (models.Sprint, error) {
	var sp models.Sprint
	var completedAt sql.NullTime
	err := row.Scan(&sp.ID, &sp.Theme, &sp.DurationDays, &sp.Status,
		&sp.StartedAt, &sp.EndsAt, &completedAt)
	if err != nil {
		return models.Sprint{}, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		sp.CompletedAt = &t
	}
	return sp, nil
}

func (s *Store) GetSprint(ctx context.Context, id int64) (models.Sprint, error) {
	sp, err := scanSprint(s.db.QueryRowContext(ctx,
		`SELECT `+sprintColumns+` FROM sprints WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sprint{}, ErrNotFound
	}
	if err != nil {
		return models.Sprint{}, fmt.Errorf("get sprint %d: %w", id, err)
	}
	return sp, nil
}

// ListSprints returns sprints ordered by id. An empty status returns all of them.
func (s *Store) ListSprints(ctx context.Context, status string) ([]models.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}
	defer rows.Close()

	sprints := []models.Sprint{}
	for rows.Next() {
		sp, err := scanSprint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sprint: %w", err)
		}
		sprints = append(sprints, sp)
	}
	return sprints, rows.Err()
}

// CompleteSprint moves an active sprint to completed. It reports false when
// the sprint was already completed and ErrNotFound when it does not exist.
func (s *Store) CompleteSprint(ctx context.Context, id int64, now time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sprints
		SET status = $1, completed_at = $2
		WHERE id = $3 AND status = $4
	`, models.StatusCompleted, now.UTC(), id, models.StatusActive)
	if err != nil {
		return false, fmt.Errorf("complete sprint %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete sprint %d: %w", id, err)
	}
	if n > 0 {
		return true, nil
	}

	if _, err := s.GetSprint(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// CompleteOverdue completes every active sprint whose end time is before now
// and returns their ids.
func (s *Store) CompleteOverdue(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		UPDATE sprints
		SET status = $1, completed_at = $2
		WHERE status = $3 AND ends_at < $2
		RETURNING id
	`, models.StatusCompleted, now.UTC(), models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("complete overdue sprints: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan sprint id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Submissions

// InsertSubmission stores sub if its sprint is still active. The sprint check
// and the insert share one transaction; the (user_id, sprint_id) constraint
// turns a concurrent second insert into ErrDuplicate.
func (s *Store) InsertSubmission(ctx context.Context, sub models.Submission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM sprints WHERE id = $1`+s.forShare(), sub.SprintID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query sprint %d: %w", sub.SprintID, err)
	}
	if status != models.StatusActive {
		return ErrNotActive
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO submissions (id, user_id, sprint_id, text, language, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sub.ID, sub.UserID, sub.SprintID, sub.Text, sub.Language, sub.SubmittedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("commit submission: %w", err)
	}
	return nil
}

func (s *Store) GetSubmission(ctx context.Context, userID, sprintID int64) (models.Submission, error) {
	var sub models.Submission
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, sprint_id, text, language, submitted_at
		FROM submissions
		WHERE user_id = $1 AND sprint_id = $2
	`, userID, sprintID).Scan(&sub.ID, &sub.UserID, &sub.SprintID, &sub.Text, &sub.Language, &sub.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, ErrNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

func (s *Store) CountSubmissions(ctx context.Context, sprintID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE sprint_id = $1`, sprintID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

// ExportRows returns a sprint's submissions in submission order.
func (s *Store) ExportRows(ctx context.Context, sprintID int64) ([]models.ExportRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT text, user_id, language, submitted_at
		FROM submissions
		WHERE sprint_id = $1
		ORDER BY submitted_at, id
	`, sprintID)
	if err != nil {
		return nil, fmt.Errorf("query export rows: %w", err)
	}
	defer rows.Close()

	out := []models.ExportRow{}
	for rows.Next() {
		var r models.ExportRow
		if err := rows.Scan(&r.Word, &r.UserID, &r.Language, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Reporting

// DigestSince counts users and submissions created at or after since, plus a
// per-sprint submission total, inside one read transaction.
func (s *Store) DigestSince(ctx context.Context, since time.Time) (models.Digest, error) {
	d := models.Digest{Date: since}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: s.dialect == db.Postgres})
	if err != nil {
		return d, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE joined_at >= $1`, since.UTC()).Scan(&d.NewUsers)
	if err != nil {
		return d, fmt.Errorf("count new users: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE submitted_at >= $1`, since.UTC()).Scan(&d.NewWords)
	if err != nil {
		return d, fmt.Errorf("count new submissions: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT s.id, s.theme, s.status, COUNT(w.id)
		FROM sprints s
		LEFT JOIN submissions w ON w.sprint_id = s.id
		GROUP BY s.id, s.theme, s.status
		ORDER BY s.id
	`)
	if err != nil {
		return d, fmt.Errorf("count sprint submissions: %w", err)
	}
	defer rows.Close()

	d.Sprints = []models.SprintCount{}
	for rows.Next() {
		var c models.SprintCount
		if err := rows.Scan(&c.SprintID, &c.Theme, &c.Status, &c.Words); err != nil {
			return d, fmt.Errorf("scan sprint count: %w", err)
		}
		d.Sprints = append(d.Sprints, c)
	}
	if err := rows.Err(); err != nil {
		return d, err
	}

	return d, tx.Commit()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
