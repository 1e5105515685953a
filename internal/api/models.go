package api

import (
	"time"

	"github.com/taskly/taskly-api/internal/domain"
)

// RegisterRequest is the body of POST /auth/register. Presence of the fields
// is checked by the auth service so that all three are reported together.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the part of a user returned to clients.
type UserSummary struct {
	Name string `json:"name"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}

// TaskRequest is the body of POST and PATCH /tasks. Pointer fields
// distinguish an absent field from an empty one.
type TaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
}

func (req TaskRequest) status() *domain.TaskStatus {
	if req.Status == nil {
		return nil
	}
	status := domain.TaskStatus(*req.Status)
	return &status
}

// TaskResponse is the JSON form of a task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskEnvelope wraps a single task.
type TaskEnvelope struct {
	Task TaskResponse `json:"task"`
}

// TaskListResponse is returned by GET /tasks. Count is the size of this page;
// Total counts all of the caller's tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Count int            `json:"count"`
	Total int            `json:"total"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Msg string `json:"msg"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedBy:   task.UserID.String(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
