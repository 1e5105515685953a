package store

import (
	"context"

	"github.com/taskly/taskly-api/internal/domain"
)

// UserStore defines user persistence.
type UserStore interface {
	// Create saves a new user whose HashedPassword is already set.
	// Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail looks a user up by normalized email.
	// Returns ErrUserNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// DeleteByEmail removes a user and, through the owner relation, their tasks.
	// Returns ErrUserNotFound if no user has that email.
	DeleteByEmail(ctx context.Context, email string) error
}
