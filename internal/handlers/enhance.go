package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miguelbonilla1/ai-automation/internal/models"
)

const errInvalidPayload = "Invalid payload"

// EnhanceTask stores an enhanced title supplied by the enhancement worker.
// Authentication is done by middleware.EnhanceSecret ahead of this handler.
func (h *Handler) EnhanceTask(c *gin.Context) {
	request := &models.EnhanceRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errInvalidPayload})
		return
	}

	if request.TaskID == nil || *request.TaskID == "" || request.EnhancedTitle == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errInvalidPayload})
		return
	}
	taskId, err := parseId(*request.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errInvalidPayload})
		return
	}

	if err := h.tasks.SetEnhancedTitle(c.Request.Context(), taskId, *request.EnhancedTitle); err != nil {
		h.storeError(c, err)
		return
	}

	h.logger.Info("Task enhanced", "taskId", taskId)
	c.JSON(http.StatusOK, models.EnhanceResponse{OK: true})
}
