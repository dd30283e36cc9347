// Package mocks provides in-memory fakes of the store and service
// interfaces for handler and middleware tests.
package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskline/taskline-api/internal/domain"
	"github.com/taskline/taskline-api/internal/store"
)

// MockTaskStore is an in-memory implementation of store.TaskStore.
// An Err set on the struct is returned by every operation, which lets
// tests exercise the server-error paths.
type MockTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task

	// Err, when non-nil, is returned by every method.
	Err error
}

// NewMockTaskStore creates an empty MockTaskStore.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.Err != nil {
		return m.Err
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

// GetForUser implements store.TaskStore.GetForUser
func (m *MockTaskStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// ListByUser implements store.TaskStore.ListByUser
func (m *MockTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := []*domain.Task{}
	for _, task := range m.tasks {
		if task.UserID == userID {
			copied := *task
			tasks = append(tasks, &copied)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.Err != nil {
		return m.Err
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

// Delete implements store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Toggle implements store.TaskStore.Toggle
func (m *MockTaskStore) Toggle(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	task.Completed = !task.Completed
	task.UpdatedAt = time.Now().UTC()
	copied := *task
	return &copied, nil
}

// StatsForUser implements store.TaskStore.StatsForUser
func (m *MockTaskStore) StatsForUser(ctx context.Context, userID uuid.UUID) (domain.TaskStats, error) {
	if m.Err != nil {
		return domain.TaskStats{}, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var total, completed int
	breakdown := map[string]int{}
	for _, task := range m.tasks {
		if task.UserID != userID {
			continue
		}
		total++
		if task.Completed {
			completed++
		}
		breakdown[string(task.Priority)]++
	}
	return domain.NewTaskStats(total, completed, breakdown), nil
}

// SearchByUser implements store.TaskStore.SearchByUser
func (m *MockTaskStore) SearchByUser(ctx context.Context, userID uuid.UUID, query string) ([]*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if query == "" {
		return m.ListByUser(ctx, userID)
	}

	all, err := m.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := []*domain.Task{}
	for _, task := range all {
		if strings.Contains(strings.ToLower(task.Title), q) ||
			strings.Contains(strings.ToLower(task.Description), q) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// WithTx implements store.TaskStore.WithTx
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
