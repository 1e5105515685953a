package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus is the progress state of a task.
type TaskStatus string

// Task status values.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Field limits for tasks, counted in runes.
const (
	MaxTaskTitleLength       = 200
	MaxTaskDescriptionLength = 2000
)

// Task validation errors.
var (
	ErrEmptyTaskID            = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner         = errors.New("task owner cannot be empty")
	ErrEmptyTaskTitle         = errors.New("task title cannot be empty")
	ErrEmptyTaskDescription   = errors.New("task description cannot be empty")
	ErrTaskTitleTooLong       = errors.New("task title is too long")
	ErrTaskDescriptionTooLong = errors.New("task description is too long")
	ErrInvalidTaskStatus      = errors.New("invalid task status")
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ParseTaskStatus converts s into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", NewValidationError("status", "must be one of pending, in-progress, completed", ErrInvalidTaskStatus)
	}
	return status, nil
}

// Task is a unit of work owned by a single user.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a task for userID. An empty status defaults to pending.
func NewTask(userID uuid.UUID, title, description string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task's fields against the domain rules.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyTaskID)
	}
	if t.UserID == uuid.Nil {
		return NewValidationError("created_by", "cannot be empty", ErrEmptyTaskOwner)
	}
	if err := ValidateTaskTitle(t.Title); err != nil {
		return err
	}
	if err := ValidateTaskDescription(t.Description); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return NewValidationError("status", "must be one of pending, in-progress, completed", ErrInvalidTaskStatus)
	}
	return nil
}

// ValidateTaskTitle checks a title in isolation.
func ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return NewValidationError("title", "must be at most 200 characters", ErrTaskTitleTooLong)
	}
	return nil
}

// ValidateTaskDescription checks a description in isolation.
func ValidateTaskDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return NewValidationError("description", "cannot be empty", ErrEmptyTaskDescription)
	}
	if utf8.RuneCountInString(description) > MaxTaskDescriptionLength {
		return NewValidationError("description", "must be at most 2000 characters", ErrTaskDescriptionTooLong)
	}
	return nil
}
