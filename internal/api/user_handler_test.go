package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/mocks"
	"github.com/phrazzld/todolist-api/internal/service"
)

func newUserTestRouter(users service.UserService, tasks service.TaskService) http.Handler {
	h := NewUserHandler(users, tasks, nil)
	r := chi.NewRouter()
	r.Get("/api/Users/me", h.Me)
	r.Get("/api/Users", h.ListUsers)
	r.Get("/api/Users/{id}", h.GetUser)
	r.Get("/api/Users/{id}/tasks", h.ListUserTasks)
	r.Post("/api/Users", h.CreateUser)
	r.Put("/api/Users", h.UpdateUser)
	r.Delete("/api/Users/{id}", h.DeleteUser)
	return r
}

func sampleUser(id int64, username string) *domain.User {
	created := time.Date(2026, time.February, 2, 8, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           id,
		Name:         "Alice Doe",
		Position:     "Engineer",
		Username:     username,
		Password:     "password123",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:         domain.RoleUser,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestUserHandler_Me(t *testing.T) {
	router := newUserTestRouter(new(mocks.MockUserService), new(mocks.MockTaskService))

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/Users/me", nil)
		req = req.WithContext(shared.WithUser(req.Context(), sampleUser(1, "alice")))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{
			"id": 1,
			"name": "Alice Doe",
			"position": "Engineer",
			"username": "alice",
			"role": "User",
			"createdAt": "2026-02-02T08:00:00Z",
			"updatedAt": "2026-02-02T08:00:00Z"
		}`, rr.Body.String())
	})

	t.Run("no user in context", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/Users/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUserHandler_NeverExposesCredentials(t *testing.T) {
	users := new(mocks.MockUserService)
	users.On("ListUsers", mock.Anything).Return([]*domain.User{sampleUser(1, "alice"), sampleUser(2, "bob")}, nil)

	rr := doRequest(t, newUserTestRouter(users, new(mocks.MockTaskService)), http.MethodGet, "/api/Users", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")
	assert.NotContains(t, rr.Body.String(), "$2a$")

	var list []UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("GetUser", mock.Anything, int64(2)).Return(sampleUser(2, "bob"), nil)

		rr := doRequest(t, newUserTestRouter(users, nil), http.MethodGet, "/api/Users/2", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var got UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "bob", got.Username)
	})

	t.Run("invalid id", func(t *testing.T) {
		users := new(mocks.MockUserService)

		rr := doRequest(t, newUserTestRouter(users, nil), http.MethodGet, "/api/Users/0", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		users.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("GetUser", mock.Anything, int64(3)).Return(nil, service.ErrUserNotFound)

		rr := doRequest(t, newUserTestRouter(users, nil), http.MethodGet, "/api/Users/3", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "User not found", decodeProblem(t, rr).Message)
	})
}

func TestUserHandler_ListUserTasks(t *testing.T) {
	tasks := new(mocks.MockTaskService)
	tasks.On("ListTasksByOwner", mock.Anything, int64(1)).Return([]*domain.Task{sampleTask(4)}, nil)
	tasks.On("ListTasksByOwner", mock.Anything, int64(2)).Return(nil, service.ErrUserNotFound)
	router := newUserTestRouter(new(mocks.MockUserService), tasks)

	rr := doRequest(t, router, http.MethodGet, "/api/Users/1/tasks", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []TaskResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, int64(4), list[0].ID)

	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodGet, "/api/Users/2/tasks", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, router, http.MethodGet, "/api/Users/x/tasks", nil).Code)
}

func TestUserHandler_CreateUser(t *testing.T) {
	validBody := map[string]interface{}{
		"name":     "Carol King",
		"position": "Manager",
		"username": "carol",
		"password": "password123",
		"role":     "Admin",
	}

	t.Run("created", func(t *testing.T) {
		users := new(mocks.MockUserService)
		params := service.UserParams{
			Name:     "Carol King",
			Position: "Manager",
			Username: "carol",
			Password: "password123",
			Role:     domain.RoleAdmin,
		}
		created := sampleUser(3, "carol")
		created.Role = domain.RoleAdmin
		users.On("CreateUser", mock.Anything, params).Return(created, nil)

		rr := doRequest(t, newUserTestRouter(users, nil), http.MethodPost, "/api/Users", validBody)

		require.Equal(t, http.StatusCreated, rr.Code)
		var got UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(3), got.ID)
		assert.Equal(t, "Admin", got.Role)
		users.AssertExpectations(t)
	})

	t.Run("invalid fields", func(t *testing.T) {
		users := new(mocks.MockUserService)

		rr := doRequest(t, newUserTestRouter(users, nil), http.MethodPost, "/api/Users", map[string]interface{}{
			"name":     "Al",
			"position": "Manager",
			"username": "carol",
			"password": "short",
			"role":     "Root",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		problem := decodeProblem(t, rr)
		assert.ElementsMatch(t, []domain.FieldError{
			{Field: "name", Message: "must be at least 3 characters"},
			{Field: "password", Message: "must be at least 8 characters"},
			{Field: "role", Message: "must be one of Admin, User"},
		}, problem.Errors)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("username taken", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("create user: %w", service.ErrUsernameTaken))

		rr := doRequest(t, newUserTestRouter(users, nil), http.MethodPost, "/api/Users", validBody)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "Username already exists", decodeProblem(t, rr).Message)
	})
}

func TestUserHandler_UpdateUser(t *testing.T) {
	t.Run("updated without password", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("UpdateUser", mock.Anything, int64(2), service.UserParams{
			Name:     "Bob Smith",
			Position: "Lead",
			Username: "bob",
		}).Return(sampleUser(2, "bob"), nil)

		rr := doRequest(t, newUserTestRouter(users, nil), http.MethodPut, "/api/Users", map[string]interface{}{
			"id":       2,
			"name":     "Bob Smith",
			"position": "Lead",
			"username": "bob",
		})

		assert.Equal(t, http.StatusNoContent, rr.Code)
		users.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("UpdateUser", mock.Anything, int64(9), mock.Anything).Return(nil, service.ErrUserNotFound)

		rr := doRequest(t, newUserTestRouter(users, nil), http.MethodPut, "/api/Users", map[string]interface{}{
			"id":       9,
			"name":     "Bob Smith",
			"position": "Lead",
			"username": "bob",
		})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	users := new(mocks.MockUserService)
	users.On("DeleteUser", mock.Anything, int64(1)).Return(nil)
	users.On("DeleteUser", mock.Anything, int64(2)).Return(fmt.Errorf("delete user: %w", service.ErrConflict))
	users.On("DeleteUser", mock.Anything, int64(3)).Return(service.ErrUserNotFound)
	router := newUserTestRouter(users, nil)

	assert.Equal(t, http.StatusNoContent, doRequest(t, router, http.MethodDelete, "/api/Users/1", nil).Code)
	assert.Equal(t, http.StatusConflict, doRequest(t, router, http.MethodDelete, "/api/Users/2", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodDelete, "/api/Users/3", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, router, http.MethodDelete, "/api/Users/abc", nil).Code)
}

func TestUserHandler_PassesRequestContext(t *testing.T) {
	type ctxKey struct{}
	users := new(mocks.MockUserService)
	users.On("ListUsers", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Value(ctxKey{}) == "marker"
	})).Return([]*domain.User{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/Users", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "marker"))
	rr := httptest.NewRecorder()
	newUserTestRouter(users, nil).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	users.AssertExpectations(t)
}
