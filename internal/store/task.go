package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/todolist-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every method issues a single statement; multi-step operations are composed
// by the service layer inside RunInTransaction using WithTx.
type TaskStore interface {
	// Create inserts a new task and sets its ID and timestamps from the database.
	// Returns ErrForeignKey if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns all tasks ordered by ID.
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByOwner returns the tasks owned by a user, ordered by ID.
	ListByOwner(ctx context.Context, ownerUserID int64) ([]*domain.Task, error)

	// Update overwrites title, description, finished flag and owner.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// SetFinished marks a task as finished. Repeating it is not an error.
	// Returns ErrTaskNotFound if the task does not exist.
	SetFinished(ctx context.Context, id int64) error

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore that runs its statements on tx.
	WithTx(tx *sql.Tx) TaskStore
}
