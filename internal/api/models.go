package api

import (
	"strings"
	"time"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/service"
)

// CreateTaskRequest is the body of POST /api/Tasks.
// isFinished is accepted for compatibility and ignored: new tasks start unfinished.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=1000"`
	IsFinished  bool   `json:"isFinished"`
	OwnerUserID int64  `json:"ownerUserId" validate:"gt=0"`
}

// Validate checks the request's field rules against the trimmed text,
// the same values Params hands to the service.
func (r CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	return shared.ValidateStruct(r)
}

// Params converts the request into service input.
func (r CreateTaskRequest) Params() service.TaskParams {
	return service.TaskParams{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		OwnerUserID: r.OwnerUserID,
	}
}

// UpdateTaskRequest is the body of PUT /api/Tasks. The target task is
// identified by the id in the body.
type UpdateTaskRequest struct {
	ID          int64  `json:"id"          validate:"gt=0"`
	Title       string `json:"title"       validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=1000"`
	IsFinished  bool   `json:"isFinished"`
	OwnerUserID int64  `json:"ownerUserId" validate:"gt=0"`
}

// Validate checks the request's field rules against the trimmed text,
// the same values Params hands to the service.
func (r UpdateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	return shared.ValidateStruct(r)
}

// Params converts the request into service input.
func (r UpdateTaskRequest) Params() service.TaskParams {
	return service.TaskParams{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		IsFinished:  r.IsFinished,
		OwnerUserID: r.OwnerUserID,
	}
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsFinished  bool      `json:"isFinished"`
	OwnerUserID int64     `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsFinished:  task.IsFinished,
		OwnerUserID: task.OwnerUserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

// CreateUserRequest is the body of POST /api/Users.
type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,notblank,min=3,max=50"`
	Position string `json:"position" validate:"required,notblank,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=Admin User"`
}

// Params converts the request into service input.
func (r CreateUserRequest) Params() service.UserParams {
	return service.UserParams{
		Name:     r.Name,
		Position: r.Position,
		Username: r.Username,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// UpdateUserRequest is the body of PUT /api/Users. An empty password keeps
// the current one and an empty role keeps the current role.
type UpdateUserRequest struct {
	ID       int64  `json:"id"       validate:"gt=0"`
	Name     string `json:"name"     validate:"required,notblank,min=3,max=50"`
	Position string `json:"position" validate:"required,notblank,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=Admin User"`
}

// Params converts the request into service input.
func (r UpdateUserRequest) Params() service.UserParams {
	return service.UserParams{
		Name:     r.Name,
		Position: r.Position,
		Username: r.Username,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// UserResponse is the JSON representation of a user. It never carries the
// password or its hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Position:  user.Position,
		Username:  user.Username,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, userToResponse(user))
	}
	return out
}

// TokenResponse is returned by POST /api/auth/token.
type TokenResponse struct {
	// AccessToken is the HS256 JWT to send as "Authorization: Bearer <token>"
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}
