// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sprint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/word-sprint/auth"
	"github.com/danielhkuo/word-sprint/filter"
	"github.com/danielhkuo/word-sprint/models"
	"github.com/danielhkuo/word-sprint/store"
)

// Validator is the input policy applied to every submission.
type Validator interface {
	Validate(text string) (filter.Verdict, error)
}

type Service struct {
	store     *store.Store
	validator Validator
	admins    auth.AdminList
	loc       *time.Location
}

func NewService(st *store.Store, v Validator, admins auth.AdminList, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: st, validator: v, admins: admins, loc: loc}
}

func (s *Service) Admins() auth.AdminList {
	return s.admins
}

// Authorize fails with ErrPermissionDenied unless actor is on the admin list.
func (s *Service) Authorize(actor int64) error {
	if !s.admins.IsAdmin(actor) {
		return ErrPermissionDenied
	}
	return nil
}

// ValidDuration reports whether days is one of the allowed sprint lengths.
func ValidDuration(days int) bool {
	return slices.Contains(models.SprintDurations, days)
}

// Users

// RegisterUser records first contact or refreshes the username.
func (s *Service) RegisterUser(ctx context.Context, id int64, username string, now time.Time) error {
	return s.store.UpsertUser(ctx, id, username, now)
}

// KnownUsers returns every user id that ever contacted the bot.
func (s *Service) KnownUsers(ctx context.Context) ([]int64, error) {
	return s.store.ListUserIDs(ctx)
}

// Lifecycle

func (s *Service) CreateSprint(ctx context.Context, actor int64, days int, theme string, now time.Time) (models.Sprint, error) {
	if err := s.Authorize(actor); err != nil {
		return models.Sprint{}, err
	}
	if !ValidDuration(days) {
		return models.Sprint{}, ErrInvalidDuration
	}
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return models.Sprint{}, ErrEmptyTheme
	}

	sp, err := s.store.CreateSprint(ctx, theme, days, now)
	if err != nil {
		return models.Sprint{}, err
	}

	slog.Info("sprint created", "sprint_id", sp.ID, "theme", sp.Theme, "days", sp.DurationDays, "admin", actor)
	return sp, nil
}

// CloseSprint completes a sprint. Closing an already completed sprint is not
// an error; alreadyClosed tells the caller it was a no-op.
func (s *Service) CloseSprint(ctx context.Context, actor, id int64, now time.Time) (sp models.Sprint, alreadyClosed bool, err error) {
	if err := s.Authorize(actor); err != nil {
		return models.Sprint{}, false, err
	}

	changed, err := s.store.CompleteSprint(ctx, id, now)
	if errors.Is(err, store.ErrNotFound) {
		return models.Sprint{}, false, ErrNotFound
	}
	if err != nil {
		return models.Sprint{}, false, err
	}

	sp, err = s.store.GetSprint(ctx, id)
	if err != nil {
		return models.Sprint{}, false, err
	}

	if changed {
		slog.Info("sprint closed", "sprint_id", id, "admin", actor)
	}
	return sp, !changed, nil
}

// ListActiveSprints returns sprints with status active. End timestamps are
// not consulted; a sprint stays active until it is closed or swept.
func (s *Service) ListActiveSprints(ctx context.Context) ([]models.Sprint, error) {
	return s.store.ListSprints(ctx, models.StatusActive)
}

func (s *Service) ListAllSprints(ctx context.Context, actor int64) ([]models.Sprint, error) {
	if err := s.Authorize(actor); err != nil {
		return nil, err
	}
	return s.store.ListSprints(ctx, "")
}

func (s *Service) GetSprint(ctx context.Context, id int64) (models.Sprint, error) {
	sp, err := s.store.GetSprint(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Sprint{}, ErrNotFound
	}
	return sp, err
}

// ExpireOverdue completes every active sprint whose end time has passed.
// Only the scheduled sweep calls it.
func (s *Service) ExpireOverdue(ctx context.Context, now time.Time) ([]int64, error) {
	ids, err := s.store.CompleteOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		slog.Info("overdue sprints closed", "sprint_ids", ids)
	}
	return ids, nil
}

// Submissions

// Submit records text for one sprint on behalf of userID. Users seen for
// the first time are registered without a username.
func (s *Service) Submit(ctx context.Context, userID, sprintID int64, text string, now time.Time) (models.Submission, error) {
	sp, err := s.GetSprint(ctx, sprintID)
	if err != nil {
		return models.Submission{}, err
	}
	if !sp.Active() {
		return models.Submission{}, ErrSprintNotActive
	}

	verdict, err := s.validator.Validate(text)
	if err != nil {
		return models.Submission{}, err
	}
	if err := s.store.UpsertUser(ctx, userID, "", now); err != nil {
		return models.Submission{}, err
	}

	return s.insert(ctx, userID, sprintID, verdict, now)
}

// Outcome is the result of one sprint's share of a SubmitToActive call.
// Err is nil, ErrDuplicateSubmission or ErrSprintNotActive.
type Outcome struct {
	Sprint     models.Sprint
	Submission models.Submission
	Err        error
}

// SubmitToActive validates text once and submits it to every active sprint.
// Each sprint is independent: a duplicate in one does not block the others.
func (s *Service) SubmitToActive(ctx context.Context, userID int64, text string, now time.Time) ([]Outcome, error) {
	active, err := s.ListActiveSprints(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, ErrSprintNotActive
	}

	verdict, err := s.validator.Validate(text)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpsertUser(ctx, userID, "", now); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(active))
	for _, sp := range active {
		sub, err := s.insert(ctx, userID, sp.ID, verdict, now)
		if errors.Is(err, ErrNotFound) {
			// removed since it was listed
			err = ErrSprintNotActive
		}
		if err != nil && !errors.Is(err, ErrDuplicateSubmission) && !errors.Is(err, ErrSprintNotActive) {
			return outcomes, err
		}
		outcomes = append(outcomes, Outcome{Sprint: sp, Submission: sub, Err: err})
	}
	return outcomes, nil
}

// insert stores one submission. Ids are UUIDv7 so that ordering by
// (submitted_at, id) keeps insertion order within the same second.
func (s *Service) insert(ctx context.Context, userID, sprintID int64, verdict filter.Verdict, now time.Time) (models.Submission, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return models.Submission{}, fmt.Errorf("submission id: %w", err)
	}
	sub := models.Submission{
		ID:          id.String(),
		UserID:      userID,
		SprintID:    sprintID,
		Text:        verdict.Text,
		Language:    verdict.Language,
		SubmittedAt: now.UTC(),
	}

	err = s.store.InsertSubmission(ctx, sub)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return models.Submission{}, ErrDuplicateSubmission
	case errors.Is(err, store.ErrNotActive):
		return models.Submission{}, ErrSprintNotActive
	case errors.Is(err, store.ErrNotFound):
		return models.Submission{}, ErrNotFound
	case err != nil:
		return models.Submission{}, err
	}

	slog.Debug("submission saved", "user_id", userID, "sprint_id", sprintID, "language", sub.Language)
	return sub, nil
}

// Reporting

// ExportWords returns every submission of a sprint in submission order. An
// empty slice is a valid result.
func (s *Service) ExportWords(ctx context.Context, actor, sprintID int64) ([]models.ExportRow, error) {
	if err := s.Authorize(actor); err != nil {
		return nil, err
	}
	if _, err := s.GetSprint(ctx, sprintID); err != nil {
		return nil, err
	}
	return s.store.ExportRows(ctx, sprintID)
}

func (s *Service) SubmissionCount(ctx context.Context, sprintID int64) (int, error) {
	return s.store.CountSubmissions(ctx, sprintID)
}

// DailyDigest aggregates activity since local midnight of asOf.
func (s *Service) DailyDigest(ctx context.Context, asOf time.Time) (models.Digest, error) {
	return s.store.DigestSince(ctx, StartOfDay(asOf, s.loc))
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
