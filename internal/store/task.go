package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskly/taskly-api/internal/domain"
)

// TaskStore defines task persistence. Every method takes the owner's ID and
// applies it as a filter in the underlying query; a task belonging to another
// user behaves exactly like a task that does not exist.
type TaskStore interface {
	// Create saves a new task.
	Create(ctx context.Context, task *domain.Task) error

	// ListByOwner returns at most limit tasks owned by ownerID, ordered by
	// creation time ascending then ID, skipping the first offset.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.Task, error)

	// CountByOwner returns how many tasks ownerID has.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)

	// GetByIDForOwner returns the task matching both IDs.
	// Returns ErrTaskNotFound otherwise.
	GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// UpdateForOwner writes title, description, status and updated_at of
	// task, matching on task.ID and task.UserID in a single atomic statement,
	// and returns the stored row. Returns ErrTaskNotFound if nothing matched.
	UpdateForOwner(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// DeleteForOwner atomically removes the task matching both IDs and returns
	// what was deleted. Returns ErrTaskNotFound if nothing matched.
	DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
}
