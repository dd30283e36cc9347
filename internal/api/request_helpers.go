package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskline/taskline-api/internal/api/middleware"
	"github.com/taskline/taskline-api/internal/api/shared"
	"github.com/taskline/taskline-api/internal/domain"
)

// requireUserAndTaskID extracts the caller's user ID from the context and
// the task UUID from the URL path, writing an error response on failure.
// The bool result reports whether both extractions succeeded.
func requireUserAndTaskID(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
) (userID, taskID uuid.UUID, ok bool) {
	userID, ok = middleware.GetUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, uuid.Nil, false
	}

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return uuid.Nil, uuid.Nil, false
	}

	taskID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid task ID format", slog.String("task_id", pathID))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid task ID format",
			domain.ErrInvalidID)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, taskID, true
}
