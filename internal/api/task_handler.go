package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskly/taskly-api/internal/api/shared"
	"github.com/taskly/taskly-api/internal/service"
)

// TaskHandler serves the owner-scoped /tasks endpoints. Every handler expects
// the auth middleware to have placed the caller's ID in the context.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task service cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks?page=&limit=.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	page, err := h.tasks.ListTasks(r.Context(), userID, pageRequest(r))
	if err != nil {
		message := ""
		if errors.Is(err, service.ErrTaskNotFound) {
			message = msgNoTasksForUser
		}
		HandleAPIError(w, r, err, message)
		return
	}

	tasks := make([]TaskResponse, 0, len(page.Tasks))
	for _, task := range page.Tasks {
		tasks = append(tasks, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Tasks: tasks,
		Page:  page.Page,
		Limit: page.Limit,
		Count: len(tasks),
		Total: page.Total,
	})
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireTaskRoute(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(r.Context(), taskID, userID)
	if err != nil {
		h.taskError(w, r, taskID, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{Task: taskToResponse(task)})
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), userID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.status(),
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TaskEnvelope{Task: taskToResponse(task)})
}

// UpdateTask handles PATCH /tasks/{id}. Only the fields present in the body change.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireTaskRoute(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), taskID, userID, service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.status(),
	})
	if err != nil {
		h.taskError(w, r, taskID, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{Task: taskToResponse(task)})
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireTaskRoute(w, r, requestLogger(r, h.logger))
	if !ok {
		return
	}

	if _, err := h.tasks.DeleteTask(r.Context(), taskID, userID); err != nil {
		h.taskError(w, r, taskID, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Msg: msgTaskDeleted})
}

func (h *TaskHandler) taskError(w http.ResponseWriter, r *http.Request, taskID uuid.UUID, err error) {
	message := ""
	if errors.Is(err, service.ErrTaskNotFound) {
		message = noTaskMessage(taskID.String())
	}
	HandleAPIError(w, r, err, message)
}

func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (TaskRequest, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return req, false
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return req, false
	}
	return req, true
}
