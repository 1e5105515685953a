package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	owner := uuid.New()

	task, err := NewTask(owner, "Write report", "Quarterly numbers", "")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, owner, task.UserID)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestNewTaskValidation(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name        string
		owner       uuid.UUID
		title       string
		description string
		status      TaskStatus
		wantErr     error
	}{
		{"missing owner", uuid.Nil, "t", "d", "", ErrEmptyTaskOwner},
		{"empty title", owner, "", "d", "", ErrEmptyTaskTitle},
		{"blank title", owner, "   ", "d", "", ErrEmptyTaskTitle},
		{"empty description", owner, "t", "", "", ErrEmptyTaskDescription},
		{"long title", owner, strings.Repeat("a", MaxTaskTitleLength+1), "d", "", ErrTaskTitleTooLong},
		{"long description", owner, "t", strings.Repeat("é", MaxTaskDescriptionLength+1), "", ErrTaskDescriptionTooLong},
		{"bad status", owner, "t", "d", "archived", ErrInvalidTaskStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(tt.owner, tt.title, tt.description, tt.status)
			assert.Nil(t, task)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr))
		})
	}
}

func TestTitleLengthCountsRunes(t *testing.T) {
	// 200 multi-byte runes is within the limit even though it exceeds 200 bytes.
	assert.NoError(t, ValidateTaskTitle(strings.Repeat("ü", MaxTaskTitleLength)))
}

func TestParseTaskStatus(t *testing.T) {
	for _, s := range []string{"pending", "in-progress", "completed", " completed "} {
		status, err := ParseTaskStatus(s)
		require.NoError(t, err, s)
		assert.True(t, status.Valid())
	}

	_, err := ParseTaskStatus("done")
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	assert.Equal(t, "validation failed: title cannot be empty", err.Error())

	bare := NewValidationError("", "bad input", nil)
	assert.Equal(t, "validation failed: bad input", bare.Error())
	assert.ErrorIs(t, bare, ErrValidation)
}
