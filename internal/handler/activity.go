// Package handler contains the HTTP layer: request parsing, response
// writing, and the mapping from domain errors to status codes. All
// business behavior lives in the repository and model packages.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/sag-insper/schedule-api/internal/apperror"
	"github.com/sag-insper/schedule-api/internal/model"
	"github.com/sag-insper/schedule-api/internal/repository"
)

// ActivityHandler serves the activity CRUD endpoints.
type ActivityHandler struct {
	activities *repository.Activities
	logger     *slog.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(activities *repository.Activities, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activities: activities,
		logger:     logger,
	}
}

// HandleList returns every registered activity.
//
// GET /activity/ — public, 200 with an array (possibly empty).
func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// HandleCreate registers a new activity.
//
// POST /activity/ — requires bearer auth; 201 with the stored record,
// 409 on an invalid payload, 500 on backend failure.
func (h *ActivityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var activity model.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		h.logger.Warn("invalid activity JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	created, err := h.activities.Create(r.Context(), activity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate applies a partial update to an existing activity.
//
// PATCH /activity/{id} — requires bearer auth; 200 with the merged
// record, 404 for an unknown id, 409 on an invalid patch.
func (h *ActivityHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch model.ActivityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.Warn("invalid patch JSON",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	updated, err := h.activities.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes an activity.
//
// DELETE /activity/{id} — requires bearer auth; 200 with a
// confirmation message, 404 for an unknown id.
func (h *ActivityHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.activities.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Message{Detail: "Activity deleted successfully"})
}
