package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/mocks"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/phrazzld/todolist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskFixture struct {
	svc   service.TaskService
	tasks *mocks.MockTaskStore
	users *mocks.MockUserStore
	owner *domain.User
	db    sqlmock.Sqlmock
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	users := mocks.NewMockUserStore()
	owner := users.Seed(domain.User{Name: "Alice", Position: "Engineer", Username: "alice", PasswordHash: "h"})
	tasks := mocks.NewMockTaskStore(users)

	svc, err := service.NewTaskService(tasks, users, db, nil)
	require.NoError(t, err)

	return &taskFixture{svc: svc, tasks: tasks, users: users, owner: owner, db: mock}
}

func (f *taskFixture) expectCommit() {
	f.db.ExpectBegin()
	f.db.ExpectCommit()
}

func (f *taskFixture) expectRollback() {
	f.db.ExpectBegin()
	f.db.ExpectRollback()
}

func TestNewTaskService_RequiresDependencies(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	users := mocks.NewMockUserStore()
	tasks := mocks.NewMockTaskStore(users)

	_, err = service.NewTaskService(nil, users, db, nil)
	assert.Error(t, err)
	_, err = service.NewTaskService(tasks, nil, db, nil)
	assert.Error(t, err)
	_, err = service.NewTaskService(tasks, users, nil, nil)
	assert.Error(t, err)
}

func TestTaskService_CreateThenGet(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	f.expectCommit()

	created, err := f.svc.CreateTask(ctx, service.TaskParams{
		Title:       "  Buy milk ",
		IsFinished:  true,
		OwnerUserID: f.owner.ID,
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)

	got, err := f.svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.False(t, got.IsFinished, "new tasks start unfinished")
	assert.Equal(t, f.owner.ID, got.OwnerUserID)
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params service.TaskParams
		field  string
	}{
		{"empty title", service.TaskParams{Title: "   ", OwnerUserID: 1}, "title"},
		{"title too long", service.TaskParams{Title: strings.Repeat("a", 101), OwnerUserID: 1}, "title"},
		{"description too long", service.TaskParams{Title: "ok", Description: strings.Repeat("d", 1001), OwnerUserID: 1}, "description"},
		{"missing owner id", service.TaskParams{Title: "ok"}, "ownerUserId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTaskFixture(t)

			_, err := f.svc.CreateTask(context.Background(), tt.params)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Equal(t, 0, f.tasks.Len(), "nothing is persisted")
			assert.Equal(t, 0, f.tasks.CallCount("Create"))
		})
	}
}

func TestTaskService_CreateTask_UnknownOwner(t *testing.T) {
	f := newTaskFixture(t)
	f.expectRollback()

	_, err := f.svc.CreateTask(context.Background(), service.TaskParams{Title: "Buy milk", OwnerUserID: 999})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ownerUserId", verr.Fields[0].Field)
	assert.Equal(t, 0, f.tasks.Len())
}

func TestTaskService_CreateTask_ForeignKeyRaceIsConflict(t *testing.T) {
	f := newTaskFixture(t)
	f.expectRollback()
	f.tasks.CreateFn = func(ctx context.Context, task *domain.Task) error {
		return store.ErrForeignKey
	}

	_, err := f.svc.CreateTask(context.Background(), service.TaskParams{Title: "Buy milk", OwnerUserID: f.owner.ID})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestTaskService_InvalidIDsNeverReachStore(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	for _, id := range []int64{0, -1} {
		_, err := f.svc.GetTask(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidID)

		assert.ErrorIs(t, f.svc.DeleteTask(ctx, id), domain.ErrInvalidID)
		assert.ErrorIs(t, f.svc.FinishTask(ctx, id), domain.ErrInvalidID)

		_, err = f.svc.UpdateTask(ctx, id, service.TaskParams{Title: "x", OwnerUserID: f.owner.ID})
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	}

	assert.Empty(t, f.tasks.Calls)
}

func TestTaskService_FinishTwice(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	f.expectCommit()

	task, err := f.svc.CreateTask(ctx, service.TaskParams{Title: "Buy milk", OwnerUserID: f.owner.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.FinishTask(ctx, task.ID))
	require.NoError(t, f.svc.FinishTask(ctx, task.ID))

	got, err := f.svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFinished)
}

func TestTaskService_MissingTask(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetTask(ctx, 42)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
	assert.ErrorIs(t, f.svc.DeleteTask(ctx, 42), service.ErrTaskNotFound)
	assert.ErrorIs(t, f.svc.FinishTask(ctx, 42), service.ErrTaskNotFound)

	f.expectRollback()
	_, err = f.svc.UpdateTask(ctx, 42, service.TaskParams{Title: "x", OwnerUserID: f.owner.ID})
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}

func TestTaskService_UpdateTask(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	f.expectCommit()
	f.expectCommit()

	task, err := f.svc.CreateTask(ctx, service.TaskParams{Title: "Buy milk", OwnerUserID: f.owner.ID})
	require.NoError(t, err)

	updated, err := f.svc.UpdateTask(ctx, task.ID, service.TaskParams{
		Title:       "Buy oat milk",
		Description: "two cartons",
		IsFinished:  true,
		OwnerUserID: f.owner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)

	got, err := f.svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", got.Title)
	assert.Equal(t, "two cartons", got.Description)
	assert.True(t, got.IsFinished)
}

func TestTaskService_DeleteThenGet(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	f.expectCommit()

	task, err := f.svc.CreateTask(ctx, service.TaskParams{Title: "Buy milk", OwnerUserID: f.owner.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTask(ctx, task.ID))

	_, err = f.svc.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}

func TestTaskService_ListTasksByOwner(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	other := f.users.Seed(domain.User{Name: "Bob", Position: "Manager", Username: "bob", PasswordHash: "h"})
	f.expectCommit()
	f.expectCommit()

	_, err := f.svc.CreateTask(ctx, service.TaskParams{Title: "mine", OwnerUserID: f.owner.ID})
	require.NoError(t, err)
	_, err = f.svc.CreateTask(ctx, service.TaskParams{Title: "theirs", OwnerUserID: other.ID})
	require.NoError(t, err)

	tasks, err := f.svc.ListTasksByOwner(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Title)

	all, err := f.svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListTasksByOwner(ctx, 999)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestTaskService_UnexpectedStoreErrorIsWrapped(t *testing.T) {
	f := newTaskFixture(t)
	boom := errors.New("connection refused")
	f.tasks.GetByIDFn = func(ctx context.Context, id int64) (*domain.Task, error) {
		return nil, boom
	}

	_, err := f.svc.GetTask(context.Background(), 1)

	var serviceErr *service.TaskServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "get_task", serviceErr.Operation)
	assert.ErrorIs(t, err, boom)
}
