// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sprint holds the sprint lifecycle, the submission pipeline and the
read-side reports.

# Lifecycle

Sprints are created active and move to completed exactly once:

	sp, err := svc.CreateSprint(ctx, adminID, 7, "animals", time.Now())
	sp, alreadyClosed, err := svc.CloseSprint(ctx, adminID, sp.ID, time.Now())

Closing a completed sprint succeeds and reports alreadyClosed. Active
sprints are never expired on read; ExpireOverdue is a separate sweep.

# Submissions

	sub, err := svc.Submit(ctx, userID, sprintID, "cat", time.Now())
	outcomes, err := svc.SubmitToActive(ctx, userID, "cat", time.Now())

Checks run in this order: sprint exists (ErrNotFound), sprint is active
(ErrSprintNotActive), text passes the validator (*filter.Rejection), no
earlier submission for the pair (ErrDuplicateSubmission). The last check is
the database's UNIQUE (user_id, sprint_id) constraint.

# Permissions

CreateSprint, CloseSprint, ListAllSprints and ExportWords take the acting
user id and fail with ErrPermissionDenied for anyone off the admin list.

# Reports

ExportWords returns rows in submission order. DailyDigest counts users and
submissions since local midnight in the service's location; "now" is always
passed in so the result does not depend on the wall clock.
*/
package sprint
