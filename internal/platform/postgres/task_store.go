package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskline/taskline-api/internal/domain"
	"github.com/taskline/taskline-api/internal/platform/logger"
	"github.com/taskline/taskline-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = "id, user_id, title, description, completed, priority, due_date, created_at, updated_at"

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, completed, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetForUser implements store.TaskStore.GetForUser
// Ownership is enforced in the WHERE clause, so a task owned by another
// user is indistinguishable from a missing one.
func (s *PostgresTaskStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return s.queryTasks(ctx, query, userID)
}

// Update implements store.TaskStore.Update
// It replaces the client-writable fields of the task identified by
// (task.ID, task.UserID) and advances the updated_at timestamp.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, priority = $4, due_date = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.DueDate,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for update",
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task updated", slog.String("task_id", task.ID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for delete", slog.String("task_id", id.String()))
		return err
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// Toggle implements store.TaskStore.Toggle
// The flip happens in SQL so concurrent toggles each invert the value they
// find; two toggles always restore the original state.
func (s *PostgresTaskStore) Toggle(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET completed = NOT completed, updated_at = $1
		WHERE id = $2 AND user_id = $3
		RETURNING ` + taskColumns + `
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, time.Now().UTC(), id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for toggle", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to toggle task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("task toggled",
		slog.String("task_id", id.String()),
		slog.Bool("completed", task.Completed))
	return task, nil
}

// StatsForUser implements store.TaskStore.StatsForUser
// Counts are computed in a single pass; the priority breakdown comes from a
// GROUP BY over the same rows.
func (s *PostgresTaskStore) StatsForUser(ctx context.Context, userID uuid.UUID) (domain.TaskStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total, completed int
	countQuery := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM tasks
		WHERE user_id = $1
	`
	if err := s.db.QueryRowContext(ctx, countQuery, userID).Scan(&total, &completed); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return domain.TaskStats{}, MapError(err)
	}

	breakdown := map[string]int{}
	breakdownQuery := `
		SELECT priority, COUNT(*)
		FROM tasks
		WHERE user_id = $1
		GROUP BY priority
	`
	rows, err := s.db.QueryContext(ctx, breakdownQuery, userID)
	if err != nil {
		log.Error("failed to query priority breakdown",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return domain.TaskStats{}, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var priority string
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return domain.TaskStats{}, MapError(err)
		}
		breakdown[priority] = count
	}
	if err := rows.Err(); err != nil {
		return domain.TaskStats{}, MapError(err)
	}

	return domain.NewTaskStats(total, completed, breakdown), nil
}

// likeEscaper quotes LIKE metacharacters so user input only ever matches
// literally. Without it a query of "%" would match every row.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern returns the query with %, _ and \ escaped for use
// inside an ILIKE pattern.
func escapeLikePattern(query string) string {
	return likeEscaper.Replace(query)
}

// SearchByUser implements store.TaskStore.SearchByUser
// An empty query deliberately applies no filter and returns the full list.
func (s *PostgresTaskStore) SearchByUser(ctx context.Context, userID uuid.UUID, query string) ([]*domain.Task, error) {
	if query == "" {
		return s.ListByUser(ctx, userID)
	}

	sqlQuery := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		  AND (title ILIKE '%' || $2 || '%' ESCAPE '\'
		       OR description ILIKE '%' || $2 || '%' ESCAPE '\')
		ORDER BY created_at DESC
	`
	return s.queryTasks(ctx, sqlQuery, userID, escapeLikePattern(query))
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryTasks runs a SELECT over the task columns and scans all rows.
func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return tasks, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var priority string
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&priority,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}

	return &task, nil
}
