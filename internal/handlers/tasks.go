package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/miguelbonilla1/ai-automation/internal/models"
	"github.com/miguelbonilla1/ai-automation/internal/repository"
	"github.com/miguelbonilla1/ai-automation/internal/webhook"
)

const (
	errInvalidJSON   = "Invalid JSON"
	errTitleRequired = "Title is required"
	errTitleEmpty    = "Title cannot be empty"
	errIDRequired    = "Task ID is required"
	errIDInvalid     = "Invalid task ID"
	errNotFound      = "Task not found"
)

func (h *Handler) GetTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	taskId, err := parseId(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errIDInvalid})
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), taskId)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: errNotFound})
		return
	}
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c *gin.Context) {
	request := &models.CreateTaskRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		if isTypeError(err) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errTitleRequired})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errInvalidJSON})
		return
	}

	if request.Title == nil || strings.TrimSpace(*request.Title) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errTitleRequired})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), *request.Title, request.UserEmail)
	if err != nil {
		h.storeError(c, err)
		return
	}

	if h.notifier != nil {
		h.notifier.TaskCreated(webhook.TaskCreated{
			TaskID:    task.ID,
			Title:     task.Title,
			UserEmail: task.UserEmail,
		})
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	request := &models.UpdateTaskRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errInvalidJSON})
		return
	}

	if request.ID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errIDRequired})
		return
	}
	taskId, err := parseId(request.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errIDInvalid})
		return
	}

	if request.Title != nil && strings.TrimSpace(*request.Title) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errTitleEmpty})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), taskId, models.TaskUpdate{
		Title:     request.Title,
		Completed: request.Completed,
	})
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	request := &models.DeleteTaskRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errInvalidJSON})
		return
	}

	if request.ID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errIDRequired})
		return
	}
	taskId, err := parseId(request.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errIDInvalid})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskId); err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteTaskResponse{Success: true})
}

// storeError reports a persistence failure with the store's own message.
func (h *Handler) storeError(c *gin.Context, err error) {
	h.logger.Error("Task store request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
}
