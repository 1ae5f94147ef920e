package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/service"
)

// UserHandler handles user management requests. Apart from Me, its routes
// are mounted behind the admin role check.
type UserHandler struct {
	userService service.UserService
	taskService service.TaskService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, taskService service.TaskService, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		taskService: taskService,
		logger:      log.With(slog.String("component", "user_handler")),
	}
}

// Me godoc
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  api.UserResponse
// @Failure      401  {object}  shared.Problem
// @Router       /api/Users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   api.UserResponse
// @Failure      401  {object}  shared.Problem
// @Failure      403  {object}  shared.Problem
// @Router       /api/Users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// GetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  api.UserResponse
// @Failure      400  {object}  shared.Problem
// @Failure      401  {object}  shared.Problem
// @Failure      403  {object}  shared.Problem
// @Failure      404  {object}  shared.Problem
// @Router       /api/Users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ListUserTasks godoc
// @Summary      List the tasks owned by a user
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   api.TaskResponse
// @Failure      400  {object}  shared.Problem
// @Failure      401  {object}  shared.Problem
// @Failure      403  {object}  shared.Problem
// @Failure      404  {object}  shared.Problem
// @Router       /api/Users/{id}/tasks [get]
func (h *UserHandler) ListUserTasks(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.ListTasksByOwner(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      api.CreateUserRequest  true  "User"
// @Success      201   {object}  api.UserResponse
// @Failure      401   {object}  shared.Problem
// @Failure      403   {object}  shared.Problem
// @Failure      409   {object}  shared.Problem
// @Failure      422   {object}  shared.Problem
// @Router       /api/Users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Params())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("user created via API",
		slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  The user is identified by the id in the body. An empty password keeps the current one.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      api.UpdateUserRequest  true  "User"
// @Success      204
// @Failure      401   {object}  shared.Problem
// @Failure      403   {object}  shared.Problem
// @Failure      404   {object}  shared.Problem
// @Failure      409   {object}  shared.Problem
// @Failure      422   {object}  shared.Problem
// @Router       /api/Users [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.userService.UpdateUser(r.Context(), req.ID, req.Params()); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondNoContent(w)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Users that still own tasks cannot be deleted.
// @Tags         users
// @Security     BasicAuth
// @Param        id   path      int  true  "User ID"
// @Success      204
// @Failure      400  {object}  shared.Problem
// @Failure      401  {object}  shared.Problem
// @Failure      403  {object}  shared.Problem
// @Failure      404  {object}  shared.Problem
// @Failure      409  {object}  shared.Problem
// @Router       /api/Users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondNoContent(w)
}
