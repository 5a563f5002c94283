// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/word-sprint/middleware"
	"github.com/danielhkuo/word-sprint/models"
	"github.com/danielhkuo/word-sprint/sprint"
)

type SprintsHandler struct {
	svc *sprint.Service
}

func NewSprintsHandler(svc *sprint.Service) *SprintsHandler {
	return &SprintsHandler{svc: svc}
}

// ListActive handles GET /sprints
// Returns the sprints currently accepting words, oldest first.
func (h *SprintsHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	sprints, err := h.svc.ListActiveSprints(r.Context())
	if err != nil {
		slog.Error("failed to list sprints", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if sprints == nil {
		sprints = []models.Sprint{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.SprintListResponse{Sprints: sprints})
}

// Get handles GET /sprints/{id}
// Returns one sprint with its submission count. Words themselves stay private.
func (h *SprintsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sprint id must be a positive integer")
		return
	}

	sp, err := h.svc.GetSprint(r.Context(), id)
	if errors.Is(err, sprint.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Sprint not found")
		return
	}
	if err != nil {
		slog.Error("failed to query sprint", "sprint_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := h.svc.SubmissionCount(r.Context(), id)
	if err != nil {
		slog.Error("failed to count submissions", "sprint_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SprintDetailResponse{
		Sprint:      sp,
		Submissions: count,
	})
}
