package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/store"
)

// MockUserStore implements store.UserStore in memory.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)

	// Injected failures
	CreateErr     error
	GetByEmailErr error

	// CreateCalls counts Create invocations, including failed ones.
	CreateCalls int

	mu     sync.Mutex
	users  map[int64]domain.User
	nextID int64
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users:  make(map[int64]domain.User),
		nextID: 1,
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "validation failed", store.ErrInvalidEntity)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	user.ID = m.nextID
	m.nextID++
	stored := *user
	stored.Password = ""
	m.users[user.ID] = stored
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.GetByEmailErr != nil {
		return nil, m.GetByEmailErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// authorName returns the stored name of user id and whether the user exists.
func (m *MockUserStore) authorName(id int64) (*string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, false
	}
	return user.Name, true
}
