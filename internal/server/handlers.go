// Package server exposes the task service over HTTP with gin.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/idilsaglam/taskboard/internal/service"
)

// Canonical error bodies, matched by the browser/TUI clients.
const (
	msgTitleRequired    = "Title is required and must be a string"
	msgTaskNotFound     = "Task not found"
	msgMethodNotAllowed = "Method not allowed"
	msgInternalError    = "Internal server error"
)

// Handlers holds the HTTP handlers for the task API.
type Handlers struct {
	svc service.API
	log *slog.Logger
}

// NewHandlers creates handlers backed by the given service.
func NewHandlers(svc service.API, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{svc: svc, log: log}
}

type createRequest struct {
	Title *string `json:"title"`
}

// HandleListTasks handles GET /api/tasks.
func (h *Handlers) HandleListTasks(c *gin.Context) {
	logger := h.requestLogger(c, "HandleListTasks")

	tasks, err := h.svc.ListTasks(c.Request.Context())
	if err != nil {
		logger.Error("list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// HandleCreateTask handles POST /api/tasks.
//
// Responds 201 with the created task, or 400 when the title is
// missing, empty, or not a JSON string.
func (h *Handlers) HandleCreateTask(c *gin.Context) {
	logger := h.requestLogger(c, "HandleCreateTask")

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), *req.Title)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
			return
		}
		logger.Error("create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}
	logger.Info("task created", "id", task.ID)
	c.JSON(http.StatusCreated, task)
}

// HandleToggleTask handles PUT /api/tasks/:id. No body; flips the
// completion flag and returns the updated task.
func (h *Handlers) HandleToggleTask(c *gin.Context) {
	logger := h.requestLogger(c, "HandleToggleTask")
	id := c.Param("id")

	task, err := h.svc.ToggleTask(c.Request.Context(), id)
	if err != nil {
		logger.Error("toggle failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgTaskNotFound})
		return
	}
	c.JSON(http.StatusOK, task)
}

// HandleDeleteTask handles DELETE /api/tasks/:id.
func (h *Handlers) HandleDeleteTask(c *gin.Context) {
	logger := h.requestLogger(c, "HandleDeleteTask")
	id := c.Param("id")

	ok, err := h.svc.DeleteTask(c.Request.Context(), id)
	if err != nil {
		logger.Error("delete failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgTaskNotFound})
		return
	}
	logger.Info("task deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handlers) requestLogger(c *gin.Context, handler string) *slog.Logger {
	return h.log.With("request_id", getOrCreateRequestID(c), "handler", handler)
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
