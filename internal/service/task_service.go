package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/taskly/taskly-api/internal/config"
	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/redact"
	"github.com/taskly/taskly-api/internal/store"
)

// PageRequest selects a page of tasks. Non-positive values mean "use the default".
type PageRequest struct {
	Page  int
	Limit int
}

// TaskPage is one page of an owner's tasks.
type TaskPage struct {
	Tasks []*domain.Task
	Page  int
	Limit int
	// Total is the owner's task count across all pages.
	Total int
}

// TaskInput is the payload for CreateTask. Nil fields were absent from the request.
type TaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskPatch is the payload for UpdateTask. Only non-nil fields are applied.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

func (p TaskPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// TaskService is the owner-scoped task access layer.
type TaskService interface {
	// ListTasks returns one page of ownerID's tasks in creation order.
	// Fails with ErrTaskNotFound when the owner has no tasks at all.
	ListTasks(ctx context.Context, ownerID uuid.UUID, req PageRequest) (*TaskPage, error)

	// GetTask returns the task when it exists and belongs to ownerID.
	GetTask(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error)

	// CreateTask validates input and stores a new task owned by ownerID.
	CreateTask(ctx context.Context, ownerID uuid.UUID, input TaskInput) (*domain.Task, error)

	// UpdateTask applies patch to the caller's task and returns the stored result.
	UpdateTask(ctx context.Context, taskID, ownerID uuid.UUID, patch TaskPatch) (*domain.Task, error)

	// DeleteTask removes the caller's task and returns what was deleted.
	DeleteTask(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error)
}

type taskServiceImpl struct {
	tasks           store.TaskStore
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a TaskService backed by tasks.
func NewTaskService(tasks store.TaskStore, cfg config.TasksConfig, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if cfg.DefaultPageSize <= 0 {
		return nil, domain.NewValidationError("default_page_size", "must be positive", domain.ErrValidation)
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return nil, domain.NewValidationError("max_page_size", "must be at least default_page_size", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:           tasks,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
		logger:          logger.With(slog.String("component", "task_service")),
	}, nil
}

// normalize applies the paging defaults: page below 1 becomes 1, a missing
// limit becomes the default and an oversized one is clamped.
func (s *taskServiceImpl) normalize(req PageRequest) PageRequest {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = s.defaultPageSize
	}
	if req.Limit > s.maxPageSize {
		req.Limit = s.maxPageSize
	}
	return req
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(ctx context.Context, ownerID uuid.UUID, req PageRequest) (*TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	req = s.normalize(req)

	total, err := s.tasks.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.unexpected(log, "list", "failed to count tasks", err, ownerID)
	}
	if total == 0 {
		log.Debug("owner has no tasks", slog.String("user_id", ownerID.String()))
		return nil, fmt.Errorf("%w: no tasks for owner", ErrTaskNotFound)
	}

	page := &TaskPage{Tasks: []*domain.Task{}, Page: req.Page, Limit: req.Limit, Total: total}

	// Pages past the end are answered without a query, which also keeps the
	// offset from overflowing for absurd page numbers.
	if req.Page > (total+req.Limit-1)/req.Limit {
		return page, nil
	}

	tasks, err := s.tasks.ListByOwner(ctx, ownerID, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, s.unexpected(log, "list", "failed to list tasks", err, ownerID)
	}
	page.Tasks = tasks

	log.Debug("tasks listed",
		slog.String("user_id", ownerID.String()),
		slog.Int("page", req.Page),
		slog.Int("count", len(tasks)))
	return page, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByIDForOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, s.storeError(ctx, "get", err, ownerID)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(ctx context.Context, ownerID uuid.UUID, input TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.Title == nil || input.Description == nil {
		return nil, errEmptyTaskInput
	}
	if strings.TrimSpace(*input.Title) == "" || strings.TrimSpace(*input.Description) == "" {
		return nil, errBlankTaskFields
	}

	var status domain.TaskStatus
	if input.Status != nil {
		status = *input.Status
		if !status.Valid() {
			return nil, domain.NewValidationError("status",
				"must be one of pending, in-progress, completed", domain.ErrInvalidTaskStatus)
		}
	}

	task, err := domain.NewTask(ownerID, *input.Title, *input.Description, status)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, s.storeError(ctx, "create", err, ownerID)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", ownerID.String()))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask. All validation happens
// before the store is touched; the write itself is scoped to the owner.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	taskID, ownerID uuid.UUID,
	patch TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.empty() {
		return nil, errEmptyTaskPatch
	}
	if (patch.Title != nil && strings.TrimSpace(*patch.Title) == "") ||
		(patch.Description != nil && strings.TrimSpace(*patch.Description) == "") {
		return nil, errBlankTaskFields
	}
	if patch.Title != nil {
		if err := domain.ValidateTaskTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		if err := domain.ValidateTaskDescription(*patch.Description); err != nil {
			return nil, err
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.NewValidationError("status",
			"must be one of pending, in-progress, completed", domain.ErrInvalidTaskStatus)
	}

	task, err := s.tasks.GetByIDForOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, s.storeError(ctx, "update", err, ownerID)
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.tasks.UpdateForOwner(ctx, task)
	if err != nil {
		return nil, s.storeError(ctx, "update", err, ownerID)
	}

	log.Info("task updated",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", ownerID.String()))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	deleted, err := s.tasks.DeleteForOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, s.storeError(ctx, "delete", err, ownerID)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", ownerID.String()))
	return deleted, nil
}

// storeError translates a store failure: not-found and validation errors
// keep their identity, anything else becomes a TaskServiceError.
func (s *taskServiceImpl) storeError(ctx context.Context, op string, err error, ownerID uuid.UUID) error {
	if store.IsNotFoundError(err) {
		return fmt.Errorf("%w: %w", ErrTaskNotFound, err)
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	return s.unexpected(logger.FromContextOrDefault(ctx, s.logger), op, "store operation failed", err, ownerID)
}

func (s *taskServiceImpl) unexpected(log *slog.Logger, op, msg string, err error, ownerID uuid.UUID) error {
	log.Error(msg,
		slog.String("operation", op),
		slog.String("error", redact.Error(err)),
		slog.String("user_id", ownerID.String()))
	return NewTaskServiceError(op, msg, err)
}
