// Package service provides application-level services for managing tasks and users.
package service

import (
	"errors"
	"fmt"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps each one to an HTTP status.
var (
	// ErrTaskNotFound indicates the requested task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound indicates the requested user does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrUserNotFound = errors.New("user not found")

	// ErrConflict indicates the operation collides with existing data, such as
	// a duplicate key or a row still referenced by another.
	// API layer should map this to HTTP 409 Conflict.
	ErrConflict = errors.New("operation conflicts with existing data")

	// ErrUsernameTaken indicates another user already has the username.
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", ErrConflict)
)
