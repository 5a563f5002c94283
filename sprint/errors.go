// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sprint

import "errors"

// Expected, user-recoverable conditions. Anything else returned by Service is
// an internal failure.
var (
	ErrNotFound            = errors.New("sprint not found")
	ErrSprintNotActive     = errors.New("sprint is not active")
	ErrDuplicateSubmission = errors.New("already submitted to this sprint")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidDuration     = errors.New("duration must be 1, 7 or 30 days")
	ErrEmptyTheme          = errors.New("theme is required")
)
