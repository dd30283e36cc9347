package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskline/taskline-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetOrCreateByEmail returns the user with the given email, creating
	// one with the given username when none exists. The bool result is
	// true when a new user was created. Logging in repeatedly with the
	// same email always yields the same user.
	GetOrCreateByEmail(ctx context.Context, email, username string) (*domain.User, bool, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
