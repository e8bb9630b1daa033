package handlers

import (
	"net/http"
	"strconv"

	"github.com/Shriramtantry/task-manager/internal/models"
	"github.com/Shriramtantry/task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// createTaskRequest accepts the description under either of its two names.
type createTaskRequest struct {
	TaskDescription string `json:"task_description" example:"buy milk"`
	Description     string `json:"description,omitempty"`
	UserID          int    `json:"user_id" example:"1"`
}

func (r createTaskRequest) description() string {
	if r.TaskDescription != "" {
		return r.TaskDescription
	}
	return r.Description
}

// pathInt parses a path parameter as an integer, tagging failures as validation errors.
func pathInt(c *gin.Context, name, op string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, service.Validation(op, err)
	}
	return v, nil
}

// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      plain
// @Param        input  body      createTaskRequest  true  "task"
// @Success      201    {string}  string
// @Failure      500    {string}  string
// @Router       /api/tasks [post]
func (h *Handler) createTask(c *gin.Context) {
	var input createTaskRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logAndString(c, http.StatusInternalServerError, msgCreateFailed, "task_create_bad_body",
			service.Validation("tasks.create", err))
		return
	}

	id, err := h.services.Tasks.Create(c.Request.Context(), models.Task{
		Description: input.description(),
		UserID:      input.UserID,
	})
	if err != nil {
		h.logAndString(c, http.StatusInternalServerError, msgCreateFailed, "task_create_failed", err,
			"user_id", input.UserID)
		return
	}

	h.log.Infow("task_created", "task_id", id, "user_id", input.UserID)
	c.String(http.StatusCreated, msgTaskCreated)
}

// @Summary      List tasks of a user
// @Tags         tasks
// @Produce      json
// @Param        userId  path      int  true  "owner id"
// @Success      200     {array}   models.Task
// @Failure      500     {string}  string
// @Router       /api/tasks/{userId} [get]
func (h *Handler) listTasks(c *gin.Context) {
	userID, err := pathInt(c, "userId", "tasks.list")
	if err != nil {
		h.logAndString(c, http.StatusInternalServerError, msgFetchFailed, "task_list_bad_user", err,
			"user_id", c.Param("userId"))
		return
	}

	tasks, err := h.services.Tasks.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logAndString(c, http.StatusInternalServerError, msgFetchFailed, "task_list_failed", err, "user_id", userID)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Delete a task
// @Tags         tasks
// @Produce      plain
// @Param        taskId  path      int  true  "task id"
// @Success      200     {string}  string
// @Failure      404     {string}  string
// @Failure      500     {string}  string
// @Router       /api/tasks/{taskId} [delete]
func (h *Handler) deleteTask(c *gin.Context) {
	id, err := pathInt(c, "taskId", "tasks.delete")
	if err != nil {
		h.logAndString(c, http.StatusInternalServerError, msgDeleteFailed, "task_delete_bad_id", err,
			"task_id", c.Param("taskId"))
		return
	}

	err = h.services.Tasks.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.String(http.StatusOK, msgTaskDeleted)
	case service.KindOf(err) == service.KindNotFound:
		h.logAndString(c, http.StatusNotFound, msgTaskNotFound, "task_delete_missing", err, "task_id", id)
	default:
		h.logAndString(c, http.StatusInternalServerError, msgDeleteFailed, "task_delete_failed", err, "task_id", id)
	}
}
