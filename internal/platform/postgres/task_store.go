package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/redact"
	"github.com/taskly/taskly-api/internal/store"
)

const taskColumns = `id, title, description, status, user_id, created_at, updated_at`

// PostgresTaskStore implements store.TaskStore on the tasks table. Every
// statement filters on user_id, so ownership is enforced by the database.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a PostgresTaskStore. It panics if db is nil.
// If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	return &task, nil
}

// Create implements store.TaskStore.Create. The stored timestamps are read
// back so callers see the database's precision.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, status, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// ListByOwner implements store.TaskStore.ListByOwner.
func (s *PostgresTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", ownerID.String()))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", redact.Error(cerr)))
		}
	}()

	tasks := make([]*domain.Task, 0, limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "failed to scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "failed to iterate tasks", MapError(err))
	}

	log.Debug("tasks listed",
		slog.String("user_id", ownerID.String()),
		slog.Int("count", len(tasks)),
		slog.Int("offset", offset))
	return tasks, nil
}

// CountByOwner implements store.TaskStore.CountByOwner.
func (s *PostgresTaskStore) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = $1`, ownerID).Scan(&count)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count tasks",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", ownerID.String()))
		return 0, store.NewStoreError("task", "count", "failed to count tasks", MapError(err))
	}
	return count, nil
}

// GetByIDForOwner implements store.TaskStore.GetByIDForOwner.
func (s *PostgresTaskStore) GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		return nil, s.mapTaskError(ctx, "get", id, ownerID, err)
	}
	return task, nil
}

// UpdateForOwner implements store.TaskStore.UpdateForOwner.
func (s *PostgresTaskStore) UpdateForOwner(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING ` + taskColumns
	updated, err := scanTask(s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Status),
		time.Now().UTC(),
		task.ID,
		task.UserID,
	))
	if err != nil {
		return nil, s.mapTaskError(ctx, "update", task.ID, task.UserID, err)
	}

	log.Info("task updated",
		slog.String("task_id", updated.ID.String()),
		slog.String("user_id", updated.UserID.String()))
	return updated, nil
}

// DeleteForOwner implements store.TaskStore.DeleteForOwner.
func (s *PostgresTaskStore) DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	deleted, err := scanTask(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		return nil, s.mapTaskError(ctx, "delete", id, ownerID, err)
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("user_id", ownerID.String()))
	return deleted, nil
}

func (s *PostgresTaskStore) mapTaskError(ctx context.Context, op string, id, ownerID uuid.UUID, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrTaskNotFound
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("task query failed",
		slog.String("operation", op),
		slog.String("error", redact.Error(err)),
		slog.String("task_id", id.String()),
		slog.String("user_id", ownerID.String()))
	return store.NewStoreError("task", op, "query failed", MapError(err))
}
