// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package scheduler runs the bot's periodic jobs: the daily digest for admins
// and, when enabled, the sweep that closes overdue sprints.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/danielhkuo/word-sprint/models"
	"github.com/danielhkuo/word-sprint/notify"
	"github.com/danielhkuo/word-sprint/report"
)

// ExpireSchedule is how often the overdue sweep runs.
const ExpireSchedule = "@every 10m"

// jobTimeout bounds a single run of any job.
const jobTimeout = 5 * time.Minute

// Jobs is the work the scheduler triggers. *sprint.Service implements it.
type Jobs interface {
	DailyDigest(ctx context.Context, asOf time.Time) (models.Digest, error)
	ExpireOverdue(ctx context.Context, now time.Time) ([]int64, error)
}

type Config struct {
	Location       *time.Location
	DigestSchedule string
	AutoExpire     bool
}

type Scheduler struct {
	cron     *cron.Cron
	jobs     Jobs
	notifier notify.Notifier
	admins   []int64
	now      func() time.Time
}

// New registers the jobs without starting them.
func New(cfg Config, jobs Jobs, n notify.Notifier, admins []int64) (*Scheduler, error) {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	logger := cronLogger{}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		jobs:     jobs,
		notifier: n,
		admins:   admins,
		now:      time.Now,
	}

	if _, err := s.cron.AddFunc(cfg.DigestSchedule, s.runDigest); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", cfg.DigestSchedule, err)
	}
	if cfg.AutoExpire {
		if _, err := s.cron.AddFunc(ExpireSchedule, s.runSweep); err != nil {
			return nil, fmt.Errorf("invalid expiry schedule: %w", err)
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the schedule and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

// SendDigest computes the digest as of asOf and sends it to every admin.
// A run at midnight passes a time just before it, so the report covers the
// day that ended.
func (s *Scheduler) SendDigest(ctx context.Context, asOf time.Time) (notify.Result, error) {
	digest, err := s.jobs.DailyDigest(ctx, asOf)
	if err != nil {
		return notify.Result{}, fmt.Errorf("daily digest: %w", err)
	}
	return notify.Broadcast(ctx, s.notifier, s.admins, report.FormatDigest(digest)), nil
}

// Sweep closes overdue sprints as of now.
func (s *Scheduler) Sweep(ctx context.Context, now time.Time) ([]int64, error) {
	return s.jobs.ExpireOverdue(ctx, now)
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	res, err := s.SendDigest(ctx, s.now().Add(-time.Minute))
	if err != nil {
		slog.Error("scheduled digest failed", "error", err)
		return
	}
	slog.Info("daily digest sent", "sent", res.Sent, "failed", res.Failed)
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.Sweep(ctx, s.now()); err != nil {
		slog.Error("expiry sweep failed", "error", err)
	}
}

// cronLogger forwards cron's logr-style calls to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug(msg, append([]any{"source", "cron"}, keysAndValues...)...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error(msg, append([]any{"source", "cron", "error", err}, keysAndValues...)...)
}
