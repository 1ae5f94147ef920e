package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/phrazzld/todolist-api/internal/service/auth"
	"github.com/phrazzld/todolist-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
		message  string
	}{
		{"validation error", domain.NewValidationError("title", "is required"), http.StatusUnprocessableEntity, "Validation failed"},
		{"wrapped validation sentinel", fmt.Errorf("x: %w", domain.ErrValidation), http.StatusUnprocessableEntity, "Validation failed"},
		{"invalid entity from store", store.ErrInvalidEntity, http.StatusUnprocessableEntity, "Validation failed"},
		{"invalid id", fmt.Errorf("%w: -1", domain.ErrInvalidID), http.StatusBadRequest, "Invalid ID"},
		{"task not found", service.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"store not found", store.ErrNotFound, http.StatusNotFound, "Resource not found"},
		{"store task not found", store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"service conflict", service.ErrConflict, http.StatusConflict, "The request conflicts with existing data"},
		{"username taken", service.ErrUsernameTaken, http.StatusConflict, "Username already exists"},
		{"store duplicate", store.ErrDuplicate, http.StatusConflict, "The request conflicts with existing data"},
		{"store foreign key", store.ErrForeignKey, http.StatusConflict, "The request conflicts with existing data"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "Authentication required"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "Authentication required"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Token has expired"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "You do not have permission to perform this action"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.message, GetSafeErrorMessage(tc.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestMapErrorToStatusCode_ServiceErrorWrapping(t *testing.T) {
	t.Parallel()

	err := service.NewTaskServiceError("get_task", "failed to get task", store.ErrTaskNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(err))

	err = service.NewUserServiceError("create_user", "failed to create user", store.ErrUsernameExists)
	assert.Equal(t, http.StatusConflict, MapErrorToStatusCode(err))
	assert.Equal(t, "Username already exists", GetSafeErrorMessage(err))
}

func TestProblemFor(t *testing.T) {
	t.Parallel()

	t.Run("validation details are included", func(t *testing.T) {
		verr := domain.NewValidationError("title", "is required")
		verr.Add("ownerUserId", "must be a positive integer")

		problem := ProblemFor(fmt.Errorf("create: %w", verr), "")
		assert.Equal(t, shared.KindValidation, problem.Kind)
		assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
		assert.Len(t, problem.Errors, 2)
	})

	t.Run("custom message for client errors", func(t *testing.T) {
		problem := ProblemFor(domain.ErrInvalidID, "Invalid ownerUserId")
		assert.Equal(t, "Invalid ownerUserId", problem.Message)
	})

	t.Run("server errors keep the generic message", func(t *testing.T) {
		problem := ProblemFor(errors.New("boom"), "Failed to do the thing: boom")
		assert.Equal(t, shared.KindInternal, problem.Kind)
		assert.Equal(t, "An unexpected error occurred", problem.Message)
	})
}

func TestHandleAPIError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/Tasks/1", nil)
	req = req.WithContext(shared.WithTraceID(req.Context(), "trace-abc"))
	rr := httptest.NewRecorder()

	HandleAPIError(rr, req, fmt.Errorf("get task 1: %w", service.ErrTaskNotFound), "")

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"kind":"NotFound","message":"Task not found","status":404,"trace_id":"trace-abc"}`,
		rr.Body.String())
}
