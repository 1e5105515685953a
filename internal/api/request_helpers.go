package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskly/taskly-api/internal/api/shared"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/service"
	"github.com/taskly/taskly-api/internal/service/auth"
)

// TaskIDParam is the chi URL parameter holding a task ID.
const TaskIDParam = "id"

// requireUserID returns the authenticated user's ID, writing a 401 when the
// request did not pass through the auth middleware.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return uuid.Nil, false
	}
	return userID, true
}

// requireTaskRoute extracts the caller and the task ID from the path. A
// malformed ID cannot name any task, so it is answered with 404.
func requireTaskRoute(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	raw := chi.URLParam(r, TaskIDParam)
	taskID, err := uuid.Parse(raw)
	if err != nil {
		log.Debug("malformed task id", slog.String("value", raw))
		HandleAPIError(w, r, service.ErrTaskNotFound, noTaskMessage(raw))
		return uuid.Nil, uuid.Nil, false
	}
	return userID, taskID, true
}

// pageRequest reads the page and limit query parameters. Missing or
// non-numeric values are left at zero so the service applies its defaults.
func pageRequest(r *http.Request) service.PageRequest {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	return service.PageRequest{Page: page, Limit: limit}
}

func requestLogger(r *http.Request, def *slog.Logger) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), def)
}

func noTaskMessage(id string) string {
	return "No Task with id " + id
}
