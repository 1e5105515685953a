package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityErrorsWrapKinds(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrTaskNotFound))
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("get: %w", ErrTaskNotFound)))
	assert.False(t, IsNotFoundError(ErrEmailExists))

	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsNotFoundError(nil))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("task", "update", "failed to update task", cause)

	assert.Equal(t, "task update failed: failed to update task: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := NewStoreError("task", "get", "no match", ErrTaskNotFound)
	assert.True(t, IsNotFoundError(wrapped))

	var se *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", wrapped), &se))
	assert.Equal(t, "get", se.Operation)

	bare := NewStoreError("user", "create", "rejected", nil)
	assert.Equal(t, "user create failed: rejected", bare.Error())
}
