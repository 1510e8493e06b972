package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miguelbonilla1/ai-automation/internal/models"
)

func (h *Handler) Health(c *gin.Context) {
	if err := h.tasks.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
