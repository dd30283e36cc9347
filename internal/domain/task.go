package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Priority represents the urgency level of a task.
type Priority string

// Possible task priority values
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Maximum length for a task title.
const MaxTitleLength = 200

// Common validation errors for Task
var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID  = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle   = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong = errors.New("task title cannot exceed 200 characters")
	ErrInvalidPriority  = errors.New("invalid task priority")
)

// Task represents a single to-do item owned by exactly one user.
// All reads and mutations of a task are scoped to its owner.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// It generates a new UUID for the task ID, defaults the priority to medium
// when none is given, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string, priority Priority, dueDate *time.Time) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if len(t.Title) > MaxTitleLength {
		return ErrTaskTitleTooLong
	}

	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}

	return nil
}

// IsValid reports whether p is one of the known priority values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// TaskStats holds aggregate counts over a user's tasks.
type TaskStats struct {
	Total             int            `json:"total"`
	Completed         int            `json:"completed"`
	Incomplete        int            `json:"incomplete"`
	CompletionRate    float64        `json:"completion_rate"`
	PriorityBreakdown map[string]int `json:"priority_breakdown"`
}

// NewTaskStats computes derived fields from the raw counts.
// The completion rate is a percentage and is zero when there are no tasks.
func NewTaskStats(total, completed int, breakdown map[string]int) TaskStats {
	var rate float64
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}
	if breakdown == nil {
		breakdown = map[string]int{}
	}
	return TaskStats{
		Total:             total,
		Completed:         completed,
		Incomplete:        total - completed,
		CompletionRate:    rate,
		PriorityBreakdown: breakdown,
	}
}
