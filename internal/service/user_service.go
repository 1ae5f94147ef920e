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
	"github.com/phrazzld/todolist-api/internal/service/auth"
	"github.com/phrazzld/todolist-api/internal/store"
)

// UserParams carries the client-supplied fields of a user. On update an
// empty Password keeps the current one and an empty Role keeps the current role.
type UserParams struct {
	Name     string
	Position string
	Username string
	Password string
	Role     domain.Role
}

// UserService provides user management operations.
type UserService interface {
	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// ListUsers returns all users ordered by id
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// CreateUser validates the input, hashes the password and stores the user
	CreateUser(ctx context.Context, params UserParams) (*domain.User, error)

	// UpdateUser loads the user, applies params and stores the result
	UpdateUser(ctx context.Context, id int64, params UserParams) (*domain.User, error)

	// DeleteUser deletes a user. Users that still own tasks cannot be deleted.
	DeleteUser(ctx context.Context, id int64) error

	// EnsureAdmin creates an administrator with the given credentials unless
	// a user with that username already exists. The bool reports creation.
	EnsureAdmin(ctx context.Context, username, password string) (*domain.User, bool, error)
}

// UserServiceError wraps unexpected errors from user operations.
type UserServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for UserServiceError.
func (e *UserServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// NewUserServiceError creates a new UserServiceError.
// Known sentinel errors are translated and returned without wrapping.
func NewUserServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrUsernameExists):
		return ErrUsernameTaken
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidID):
		return err
	case errors.Is(err, ErrConflict):
		return err
	case store.IsConflictError(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	return &UserServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("password hasher cannot be nil")
	}
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, "get_user", err, slog.Int64("user_id", id))
		return nil, NewUserServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// ListUsers returns all users ordered by id
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logFailure(ctx, "list_users", err)
		return nil, NewUserServiceError("list_users", "failed to list users", err)
	}
	return users, nil
}

// CreateUser validates the input, hashes the password and stores the user
func (s *UserServiceImpl) CreateUser(ctx context.Context, params UserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(params.Name, params.Position, params.Username, params.Password, params.Role)
	if err != nil {
		log.Debug("rejected invalid user", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.setPassword(user, params.Password); err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, NewUserServiceError("create_user", "failed to hash password", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		s.logFailure(ctx, "create_user", err, slog.String("username", user.Username))
		return nil, NewUserServiceError("create_user", "failed to create user", err)
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)))
	return user, nil
}

// UpdateUser follows the pattern of getting the complete user first, then
// updating the supplied fields and passing the complete user back to the store.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id int64, params UserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		user.Name = strings.TrimSpace(params.Name)
		user.Position = strings.TrimSpace(params.Position)
		user.Username = strings.TrimSpace(params.Username)
		if params.Role != "" {
			user.Role = params.Role
		}
		user.Password = params.Password

		if err := user.Validate(); err != nil {
			return err
		}

		if params.Password != "" {
			if err := s.setPassword(user, params.Password); err != nil {
				return err
			}
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "update_user", err, slog.Int64("user_id", id))
		return nil, NewUserServiceError("update_user", "failed to update user", err)
	}

	log.Info("user updated", slog.Int64("user_id", id))
	return updated, nil
}

// DeleteUser deletes a user by their ID
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}

	if err := s.userStore.Delete(ctx, id); err != nil {
		s.logFailure(ctx, "delete_user", err, slog.Int64("user_id", id))
		return NewUserServiceError("delete_user", "failed to delete user", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// EnsureAdmin creates the bootstrap administrator if it is missing.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.userStore.GetByUsername(ctx, username)
	if err == nil {
		if !existing.IsAdmin() {
			log.Warn("bootstrap username belongs to a non-admin user",
				slog.Int64("user_id", existing.ID))
		}
		return existing, false, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, false, NewUserServiceError("ensure_admin", "failed to look up administrator", err)
	}

	admin, err := s.CreateUser(ctx, UserParams{
		Name:     "Administrator",
		Position: "Administrator",
		Username: username,
		Password: password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}

	log.Info("bootstrap administrator created", slog.Int64("user_id", admin.ID))
	return admin, true, nil
}

func (s *UserServiceImpl) setPassword(user *domain.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.Password = ""
	return nil
}

// logFailure logs expected outcomes at debug level and everything else as an error.
func (s *UserServiceImpl) logFailure(ctx context.Context, operation string, err error, attrs ...any) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("operation", operation))
	if isExpectedError(err) {
		log.Debug("user operation rejected", append(attrs, slog.String("reason", err.Error()))...)
		return
	}
	log.Error("user operation failed", append(attrs, slog.String("error", err.Error()))...)
}
