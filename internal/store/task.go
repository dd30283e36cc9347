package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskline/taskline-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every operation is scoped to the owning user: no method can read or
// mutate another user's task, and ownership violations surface as
// ErrTaskNotFound.
type TaskStore interface {
	// Create saves a new task to the store.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves a task by ID, scoped to the given owner.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// ListByUser retrieves all tasks owned by the given user, most recent
	// first. Returns an empty slice when the user has no tasks.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update replaces the client-writable fields of an existing task,
	// scoped by (task.ID, task.UserID). Timestamps are advanced by the
	// store. Returns ErrTaskNotFound if no matching row exists.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID, scoped to the given owner.
	// Returns ErrTaskNotFound if no matching row exists.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// Toggle flips the completed flag of a task and returns the updated
	// task. Applying Toggle twice restores the original value.
	// Returns ErrTaskNotFound if no matching row exists.
	Toggle(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// StatsForUser computes aggregate counts over the user's tasks.
	StatsForUser(ctx context.Context, userID uuid.UUID) (domain.TaskStats, error)

	// SearchByUser returns the user's tasks whose title or description
	// contains the query, case-insensitively. An empty query applies no
	// filter and returns the full list.
	SearchByUser(ctx context.Context, userID uuid.UUID, query string) ([]*domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
