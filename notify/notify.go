// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify defines the outbound messaging interfaces and best-effort
// fan-out.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrTransport marks a message that could not be delivered to one recipient.
var ErrTransport = errors.New("transport failure")

type Notifier interface {
	Notify(ctx context.Context, recipient int64, text string) error
}

type FileSender interface {
	SendFile(ctx context.Context, recipient int64, name string, data []byte) error
}

// Replier is everything a command handler may do towards a chat.
type Replier interface {
	Notifier
	FileSender
}

// Outbound calls in flight at once during a broadcast
const DefaultConcurrency = 4

type Result struct {
	Sent   int
	Failed int
}

// Broadcast sends text to every recipient. A failed send is logged and
// counted; it never stops the rest of the batch.
func Broadcast(ctx context.Context, n Notifier, recipients []int64, text string) Result {
	var sent, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(DefaultConcurrency)
	for _, id := range recipients {
		g.Go(func() error {
			if err := n.Notify(ctx, id, text); err != nil {
				failed.Add(1)
				slog.Warn("notification failed", "recipient", id, "error", err)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Sent: int(sent.Load()), Failed: int(failed.Load())}
	slog.Info("broadcast finished", "recipients", len(recipients), "sent", res.Sent, "failed", res.Failed)
	return res
}
