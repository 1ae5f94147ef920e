package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// ListTasks godoc
// @Summary      List tasks
// @Description  Returns all tasks ordered by id, optionally only those of one owner.
// @Tags         tasks
// @Produce      json
// @Security     BasicAuth
// @Param        ownerUserId  query     int  false  "Owner user ID"
// @Success      200          {array}   api.TaskResponse
// @Failure      400          {object}  shared.Problem
// @Failure      401          {object}  shared.Problem
// @Failure      404          {object}  shared.Problem
// @Router       /api/Tasks [get]
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, filtered, err := getQueryID(r, "ownerUserId")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid ownerUserId")
		return
	}

	var tasks []*domain.Task
	if filtered {
		tasks, err = h.taskService.ListTasksByOwner(r.Context(), ownerID)
	} else {
		tasks, err = h.taskService.ListTasks(r.Context())
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  api.TaskResponse
// @Failure      400  {object}  shared.Problem
// @Failure      401  {object}  shared.Problem
// @Failure      404  {object}  shared.Problem
// @Router       /api/Tasks/{id} [get]
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask godoc
// @Summary      Create a task
// @Description  New tasks always start unfinished.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      api.CreateTaskRequest  true  "Task"
// @Success      204
// @Failure      401   {object}  shared.Problem
// @Failure      409   {object}  shared.Problem
// @Failure      422   {object}  shared.Problem
// @Router       /api/Tasks [post]
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Params())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("task created via API",
		slog.Int64("task_id", task.ID))
	shared.RespondNoContent(w)
}

// UpdateTask godoc
// @Summary      Update a task
// @Description  The task is identified by the id in the body.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      api.UpdateTaskRequest  true  "Task"
// @Success      204
// @Failure      401   {object}  shared.Problem
// @Failure      404   {object}  shared.Problem
// @Failure      409   {object}  shared.Problem
// @Failure      422   {object}  shared.Problem
// @Router       /api/Tasks [put]
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.taskService.UpdateTask(r.Context(), req.ID, req.Params()); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondNoContent(w)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     BasicAuth
// @Param        id   path      int  true  "Task ID"
// @Success      204
// @Failure      400  {object}  shared.Problem
// @Failure      401  {object}  shared.Problem
// @Failure      404  {object}  shared.Problem
// @Router       /api/Tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondNoContent(w)
}

// FinishTask godoc
// @Summary      Mark a task as finished
// @Description  Finishing an already finished task succeeds.
// @Tags         tasks
// @Security     BasicAuth
// @Param        id   path      int  true  "Task ID"
// @Success      204
// @Failure      400  {object}  shared.Problem
// @Failure      401  {object}  shared.Problem
// @Failure      404  {object}  shared.Problem
// @Router       /api/Tasks/finish/{id} [put]
func (h *TaskHandler) FinishTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.FinishTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondNoContent(w)
}
