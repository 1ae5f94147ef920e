package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/store"
)

// MockUserStore implements store.UserStore in memory for testing.
// Function fields override the default behavior of the matching method.
type MockUserStore struct {
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	ExistsFn        func(ctx context.Context, id int64) (bool, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	UpdateFn        func(ctx context.Context, user *domain.User) error
	DeleteFn        func(ctx context.Context, id int64) error

	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Seed stores user directly, assigning an ID when it has none.
// It returns the stored copy.
func (m *MockUserStore) Seed(user domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lazyInit()

	if user.ID == 0 {
		user.ID = m.nextID
	}
	if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	user.Password = ""
	m.users[user.ID] = &user
	copied := user
	return &copied
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lazyInit()

	if m.usernameTaken(user.Username, 0) {
		return store.ErrUsernameExists
	}

	now := time.Now().UTC()
	user.ID = m.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Password = ""
	m.nextID++

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
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

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Exists implements the UserStore interface
func (m *MockUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.users[id]
	return ok, nil
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	if m.usernameTaken(user.Username, user.ID) {
		return store.ErrUsernameExists
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	user.Password = ""
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// WithTx returns the same mock; transactions are not simulated.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

func (m *MockUserStore) usernameTaken(username string, exceptID int64) bool {
	for id, user := range m.users {
		if id != exceptID && user.Username == username {
			return true
		}
	}
	return false
}

func (m *MockUserStore) lazyInit() {
	if m.users == nil {
		m.users = make(map[int64]*domain.User)
	}
	if m.nextID == 0 {
		m.nextID = 1
	}
}
