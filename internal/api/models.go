package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskline/taskline-api/internal/analysis"
	"github.com/taskline/taskline-api/internal/domain"
)

// Common request/response structures.
//
// The request models are the serialization boundary: only the fields listed
// here are client-writable. IDs, ownership, and timestamps are always
// server-computed.

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest defines the payload for replacing a task.
type UpdateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

// PatchTaskRequest defines the payload for a partial task update.
// Absent fields keep their current values.
type PatchTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskResponse defines the wire representation of a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// taskToResponse converts a domain.Task to its wire representation.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// tasksToResponse converts a slice of tasks, never returning nil so the
// JSON encoding is always an array.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the password login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// GoogleLoginRequest defines the JSON payload for the Google login endpoint.
// The credential may alternatively arrive as a form field of the same name.
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

// UserResponse defines the wire representation of a user.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// LoginResponse defines the successful response for login endpoints.
type LoginResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// AnalyzeRequest defines the payload for the analyze endpoint.
type AnalyzeRequest struct {
	Tasks []analysis.TaskSummary `json:"tasks"`
}

// AnalyzeResponse defines the successful response for the analyze endpoint.
type AnalyzeResponse struct {
	Summary  string `json:"summary"`
	Provider string `json:"provider"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
