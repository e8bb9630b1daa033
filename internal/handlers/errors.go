package handlers

import (
	"errors"

	"github.com/Shriramtantry/task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// Plaintext bodies returned by the task and auth endpoints.
const (
	msgRegistered     = "User registered successfully!"
	msgRegisterFailed = "Error registering user."
	msgUserNotFound   = "User not found."
	msgBadPassword    = "Invalid password."
	msgLoginFailed    = "Error during login."
	msgTaskCreated    = "Task created successfully!"
	msgCreateFailed   = "Error creating task."
	msgFetchFailed    = "Error fetching tasks."
	msgTaskDeleted    = "Task deleted successfully!"
	msgTaskNotFound   = "Task not found."
	msgDeleteFailed   = "Error deleting task."
	msgNotFound       = "Not found."
)

// logAndString logs err with its kind and op, then writes a plaintext body.
// The error detail never reaches the client.
func (h *Handler) logAndString(c *gin.Context, code int, body, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err, "kind", service.KindOf(err).String()}, kv...)
		var se *service.Error
		if errors.As(err, &se) {
			fields = append(fields, "op", se.Op)
		}
		if code >= 500 {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.String(code, body)
}

// logAndJSONError is the JSON counterpart used by the activity endpoint.
func (h *Handler) logAndJSONError(c *gin.Context, code int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err, "kind", service.KindOf(err).String()}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(code, gin.H{"error": userMsg})
}
