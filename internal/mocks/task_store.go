package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. Its default behaviour
// keeps tasks in insertion order, which stands in for creation-time ordering.
type MockTaskStore struct {
	CreateFn          func(ctx context.Context, task *domain.Task) error
	ListByOwnerFn     func(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.Task, error)
	CountByOwnerFn    func(ctx context.Context, ownerID uuid.UUID) (int, error)
	GetByIDForOwnerFn func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	UpdateForOwnerFn  func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	DeleteForOwnerFn  func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// Err, when set, is returned by every default method.
	Err error

	mu    sync.Mutex
	tasks []*domain.Task
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *task
	m.tasks = append(m.tasks, &stored)
	return nil
}

// ListByOwner implements store.TaskStore.
func (m *MockTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID, limit, offset)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*domain.Task{}
	skipped := 0
	for _, task := range m.tasks {
		if task.UserID != ownerID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(result) == limit {
			break
		}
		found := *task
		result = append(result, &found)
	}
	return result, nil
}

// CountByOwner implements store.TaskStore.
func (m *MockTaskStore) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	if m.CountByOwnerFn != nil {
		return m.CountByOwnerFn(ctx, ownerID)
	}
	if m.Err != nil {
		return 0, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, task := range m.tasks {
		if task.UserID == ownerID {
			count++
		}
	}
	return count, nil
}

// GetByIDForOwner implements store.TaskStore.
func (m *MockTaskStore) GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	if m.GetByIDForOwnerFn != nil {
		return m.GetByIDForOwnerFn(ctx, id, ownerID)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id, ownerID)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}
	found := *m.tasks[i]
	return &found, nil
}

// UpdateForOwner implements store.TaskStore.
func (m *MockTaskStore) UpdateForOwner(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.UpdateForOwnerFn != nil {
		return m.UpdateForOwnerFn(ctx, task)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(task.ID, task.UserID)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}
	stored := m.tasks[i]
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Status = task.Status
	stored.UpdatedAt = time.Now().UTC()
	updated := *stored
	return &updated, nil
}

// DeleteForOwner implements store.TaskStore.
func (m *MockTaskStore) DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	if m.DeleteForOwnerFn != nil {
		return m.DeleteForOwnerFn(ctx, id, ownerID)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id, ownerID)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}
	deleted := m.tasks[i]
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return deleted, nil
}

// Len returns the number of stored tasks across all owners.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *MockTaskStore) indexOf(id, ownerID uuid.UUID) int {
	for i, task := range m.tasks {
		if task.ID == id && task.UserID == ownerID {
			return i
		}
	}
	return -1
}
