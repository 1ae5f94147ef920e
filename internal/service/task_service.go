package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/store"
)

// TaskParams carries the client-supplied fields of a task.
// IsFinished is ignored on create: new tasks always start unfinished.
type TaskParams struct {
	Title       string
	Description string
	IsFinished  bool
	OwnerUserID int64
}

// TaskService defines the operations available on tasks.
type TaskService interface {
	// GetTask returns the task with the given id or ErrTaskNotFound.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasks returns every task ordered by id.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// ListTasksByOwner returns the tasks owned by a user, or ErrUserNotFound
	// when the user does not exist.
	ListTasksByOwner(ctx context.Context, ownerUserID int64) ([]*domain.Task, error)

	// CreateTask validates and persists a new unfinished task.
	CreateTask(ctx context.Context, params TaskParams) (*domain.Task, error)

	// UpdateTask replaces the mutable fields of an existing task.
	UpdateTask(ctx context.Context, id int64, params TaskParams) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id int64) error

	// FinishTask marks a task finished. Finishing a finished task succeeds.
	FinishTask(ctx context.Context, id int64) error
}

// TaskServiceError wraps unexpected errors from task operations.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Known sentinel errors are translated and returned without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, ErrUserNotFound), errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidID):
		return err
	case errors.Is(err, ErrConflict):
		return err
	case store.IsConflictError(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	users  store.UserStore
	db     *sql.DB
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	users store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, errors.New("task store cannot be nil")
	}
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		users:  users,
		db:     db,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, "get_task", err, slog.Int64("task_id", id))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		s.logFailure(ctx, "list_tasks", err)
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// ListTasksByOwner implements TaskService.ListTasksByOwner
func (s *taskServiceImpl) ListTasksByOwner(ctx context.Context, ownerUserID int64) ([]*domain.Task, error) {
	if err := domain.ValidateID(ownerUserID); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, ownerUserID)
	if err != nil {
		s.logFailure(ctx, "list_tasks_by_owner", err, slog.Int64("owner_user_id", ownerUserID))
		return nil, NewTaskServiceError("list_tasks_by_owner", "failed to check owner", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	tasks, err := s.tasks.ListByOwner(ctx, ownerUserID)
	if err != nil {
		s.logFailure(ctx, "list_tasks_by_owner", err, slog.Int64("owner_user_id", ownerUserID))
		return nil, NewTaskServiceError("list_tasks_by_owner", "failed to list tasks", err)
	}
	return tasks, nil
}

// CreateTask implements TaskService.CreateTask
// The owner check and the insert share one transaction.
func (s *taskServiceImpl) CreateTask(ctx context.Context, params TaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(params.Title, params.Description, params.OwnerUserID)
	if err != nil {
		log.Debug("rejected invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.requireOwner(ctx, s.users.WithTx(tx), task.OwnerUserID); err != nil {
			return err
		}
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		s.logFailure(ctx, "create_task", err, slog.Int64("owner_user_id", params.OwnerUserID))
		return nil, NewTaskServiceError("create_task", "failed to create task", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_user_id", task.OwnerUserID))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, params TaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          id,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		IsFinished:  params.IsFinished,
		OwnerUserID: params.OwnerUserID,
	}
	if err := task.Validate(); err != nil {
		log.Debug("rejected invalid task update",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		existing, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		task.CreatedAt = existing.CreatedAt

		if err := s.requireOwner(ctx, s.users.WithTx(tx), task.OwnerUserID); err != nil {
			return err
		}
		return txTasks.Update(ctx, task)
	})
	if err != nil {
		s.logFailure(ctx, "update_task", err, slog.Int64("task_id", id))
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		s.logFailure(ctx, "delete_task", err, slog.Int64("task_id", id))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// FinishTask implements TaskService.FinishTask
func (s *taskServiceImpl) FinishTask(ctx context.Context, id int64) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}

	if err := s.tasks.SetFinished(ctx, id); err != nil {
		s.logFailure(ctx, "finish_task", err, slog.Int64("task_id", id))
		return NewTaskServiceError("finish_task", "failed to finish task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task finished", slog.Int64("task_id", id))
	return nil
}

// requireOwner returns a ValidationError on ownerUserId when the user is missing.
func (s *taskServiceImpl) requireOwner(ctx context.Context, users store.UserStore, ownerUserID int64) error {
	exists, err := users.Exists(ctx, ownerUserID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewValidationError("ownerUserId", "references a user that does not exist")
	}
	return nil
}

// logFailure logs expected outcomes at debug level and everything else as an error.
func (s *taskServiceImpl) logFailure(ctx context.Context, operation string, err error, attrs ...any) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("operation", operation))
	if isExpectedError(err) {
		log.Debug("task operation rejected", append(attrs, slog.String("reason", err.Error()))...)
		return
	}
	log.Error("task operation failed", append(attrs, slog.String("error", err.Error()))...)
}

// isExpectedError reports whether err is a client-caused outcome rather than a fault.
func isExpectedError(err error) bool {
	return store.IsNotFoundError(err) ||
		store.IsConflictError(err) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInvalidID) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrConflict)
}
