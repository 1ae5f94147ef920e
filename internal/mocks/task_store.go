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

// MockTaskStore implements store.TaskStore in memory for testing.
// When Users is set, owner references are checked against it the way the
// database foreign key would.
type MockTaskStore struct {
	CreateFn      func(ctx context.Context, task *domain.Task) error
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn        func(ctx context.Context) ([]*domain.Task, error)
	ListByOwnerFn func(ctx context.Context, ownerUserID int64) ([]*domain.Task, error)
	UpdateFn      func(ctx context.Context, task *domain.Task) error
	SetFinishedFn func(ctx context.Context, id int64) error
	DeleteFn      func(ctx context.Context, id int64) error

	Users *MockUserStore

	// Calls counts every method invocation by name.
	Calls map[string]int

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore(users *MockUserStore) *MockTaskStore {
	return &MockTaskStore{
		Users:  users,
		Calls:  make(map[string]int),
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// CallCount returns how many times the named method was invoked.
func (m *MockTaskStore) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[method]
}

// Len returns the number of stored tasks.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}
	if err := m.checkOwner(ctx, task.OwnerUserID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	task.ID = m.nextID
	task.CreatedAt = now
	task.UpdatedAt = now
	m.nextID++

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.filter(func(*domain.Task) bool { return true }), nil
}

// ListByOwner implements the TaskStore interface
func (m *MockTaskStore) ListByOwner(ctx context.Context, ownerUserID int64) ([]*domain.Task, error) {
	m.record("ListByOwner")
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerUserID)
	}
	return m.filter(func(t *domain.Task) bool { return t.OwnerUserID == ownerUserID }), nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}
	if err := m.checkOwner(ctx, task.OwnerUserID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now().UTC()
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// SetFinished implements the TaskStore interface
func (m *MockTaskStore) SetFinished(ctx context.Context, id int64) error {
	m.record("SetFinished")
	if m.SetFinishedFn != nil {
		return m.SetFinishedFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.IsFinished = true
	task.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// WithTx returns the same mock; transactions are not simulated.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

func (m *MockTaskStore) checkOwner(ctx context.Context, ownerUserID int64) error {
	if m.Users == nil {
		return nil
	}
	exists, err := m.Users.Exists(ctx, ownerUserID)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrForeignKey
	}
	return nil
}

func (m *MockTaskStore) filter(keep func(*domain.Task) bool) []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		if keep(task) {
			copied := *task
			tasks = append(tasks, &copied)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func (m *MockTaskStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	if m.tasks == nil {
		m.tasks = make(map[int64]*domain.Task)
	}
	if m.nextID == 0 {
		m.nextID = 1
	}
	m.Calls[method]++
}
