package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services.
var (
	// ErrTaskNotFound indicates no task matched both the ID and the caller.
	// Tasks owned by other users are reported the same way as missing ones.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTaskInput is the kind shared by every rejected create or update
	// payload. The concrete error is a *RequestError carrying a client message.
	ErrInvalidTaskInput = errors.New("invalid task input")

	// ErrMissingRegistrationFields indicates email, name or password was absent.
	ErrMissingRegistrationFields = errors.New("email, name and password are required")

	// ErrMissingLoginFields indicates email or password was absent.
	ErrMissingLoginFields = errors.New("email and password are required")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RequestError is a client mistake whose Message is safe to show verbatim.
type RequestError struct {
	Kind    error
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap exposes Kind to errors.Is.
func (e *RequestError) Unwrap() error {
	return e.Kind
}

var (
	errEmptyTaskInput = &RequestError{
		Kind:    ErrInvalidTaskInput,
		Message: "you should provide title and description",
	}
	errEmptyTaskPatch = &RequestError{
		Kind:    ErrInvalidTaskInput,
		Message: "you should provide title, description or status",
	}
	errBlankTaskFields = &RequestError{
		Kind:    ErrInvalidTaskInput,
		Message: "title or description fields cannot be empty",
	}
)

// TaskServiceError adds operation context to unexpected task failures.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{Operation: operation, Message: message, Err: err}
}
