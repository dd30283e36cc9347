package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/taskline/taskline-api/internal/domain"
	"github.com/taskline/taskline-api/internal/store"
)

// MockUserStore is an in-memory implementation of store.UserStore.
type MockUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	// Err, when non-nil, is returned by every method.
	Err error
}

// NewMockUserStore creates an empty MockUserStore.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[uuid.UUID]*domain.User),
	}
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// Create implements store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.Err != nil {
		return m.Err
	}
	if err := user.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

// GetByID implements store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetOrCreateByEmail implements store.UserStore.GetOrCreateByEmail
func (m *MockUserStore) GetOrCreateByEmail(ctx context.Context, email, username string) (*domain.User, bool, error) {
	if m.Err != nil {
		return nil, false, m.Err
	}

	if user, err := m.GetByEmail(ctx, email); err == nil {
		return user, false, nil
	}

	user, err := domain.NewExternalUser(email, username)
	if err != nil {
		return nil, false, err
	}
	if err := m.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// WithTx implements store.UserStore.WithTx
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
