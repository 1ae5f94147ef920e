package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/todolist-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. The caller must have set PasswordHash;
	// the plaintext Password is never written.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username, including the password hash.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Exists reports whether a user with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// List returns all users ordered by ID.
	List(ctx context.Context) ([]*domain.User, error)

	// Update modifies name, position, username, role and password hash.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists if the new username is taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrForeignKey if the user still owns tasks.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore that runs its statements on tx.
	WithTx(tx *sql.Tx) UserStore
}
