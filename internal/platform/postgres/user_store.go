package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskline/taskline-api/internal/domain"
	"github.com/taskline/taskline-api/internal/platform/logger"
	"github.com/taskline/taskline-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

const userColumns = "id, username, email, hashed_password, created_at, updated_at"

// Create implements store.UserStore.Create
// Returns store.ErrEmailExists when the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, username, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		nullString(user.HashedPassword),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already exists", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.getUser(ctx, query, id)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.getUser(ctx, query, email)
}

// GetOrCreateByEmail implements store.UserStore.GetOrCreateByEmail
// The lookup-then-insert runs in a single transaction when the store holds
// the root connection pool. A unique violation on insert means a concurrent
// login won the race; that aborts the transaction, so the winning row is
// fetched afterwards on the pool. Re-login is therefore idempotent.
func (s *PostgresUserStore) GetOrCreateByEmail(ctx context.Context, email, username string) (*domain.User, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		user    *domain.User
		created bool
	)
	err := s.inTransaction(ctx, func(ctx context.Context, txStore *PostgresUserStore) error {
		var txErr error
		user, created, txErr = txStore.getOrCreateByEmail(ctx, email, username)
		return txErr
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// Lost the race; fetch the winner.
			existing, getErr := s.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	if created {
		log.Info("user created via external identity",
			slog.String("user_id", user.ID.String()))
	}
	return user, created, nil
}

// getOrCreateByEmail does the lookup-then-insert without race recovery.
// Callers handle store.ErrEmailExists.
func (s *PostgresUserStore) getOrCreateByEmail(ctx context.Context, email, username string) (*domain.User, bool, error) {
	user, err := s.GetByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, false, err
	}

	user, err = domain.NewExternalUser(email, username)
	if err != nil {
		return nil, false, err
	}

	if err := s.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// inTransaction runs fn against a transaction-bound copy of the store.
// A store already bound to a transaction runs fn directly on itself.
func (s *PostgresUserStore) inTransaction(ctx context.Context, fn func(context.Context, *PostgresUserStore) error) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return fn(ctx, s)
	}
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.WithTx(tx).(*PostgresUserStore))
	})
}

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresUserStore) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	var hashedPassword sql.NullString

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&hashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	user.HashedPassword = hashedPassword.String
	return &user, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
