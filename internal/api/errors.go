package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/phrazzld/todolist-api/internal/service/auth"
	"github.com/phrazzld/todolist-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrConflict):
		return http.StatusConflict

	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// errorKind names the problem kind for a status code.
func errorKind(status int) string {
	switch status {
	case http.StatusUnprocessableEntity:
		return shared.KindValidation
	case http.StatusBadRequest:
		return shared.KindInvalidArgument
	case http.StatusNotFound:
		return shared.KindNotFound
	case http.StatusConflict:
		return shared.KindConflict
	case http.StatusUnauthorized:
		return shared.KindUnauthorized
	case http.StatusForbidden:
		return shared.KindForbidden
	default:
		return shared.KindInternal
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation failed"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, service.ErrConflict),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrConflict):
		return "The request conflicts with existing data"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingCredentials):
		return "Authentication required"

	case errors.Is(err, domain.ErrForbidden):
		return "You do not have permission to perform this action"

	default:
		return "An unexpected error occurred"
	}
}

// ProblemFor builds the client-facing problem payload for err. message
// overrides the safe default when non-empty, except for server errors, which
// always carry the generic message.
func ProblemFor(err error, message string) shared.Problem {
	status := MapErrorToStatusCode(err)
	if message == "" || status == http.StatusInternalServerError {
		message = GetSafeErrorMessage(err)
	}

	problem := shared.Problem{
		Kind:    errorKind(status),
		Message: message,
		Status:  status,
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		problem.Errors = verr.Fields
	}
	return problem
}

// HandleAPIError writes the problem payload for err and logs the redacted
// error. Authentication failures are logged at WARN.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	problem := ProblemFor(err, message)

	var opts []shared.ResponseOption
	if problem.Status == http.StatusUnauthorized || problem.Status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, problem, err, opts...)
}
