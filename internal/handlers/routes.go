package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/miguelbonilla1/ai-automation/internal/middleware"
)

// NewRouter wires every endpoint onto a gin engine.
func NewRouter(h *Handler, enhanceSecret string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.SetHTMLTemplate(loadTemplates())

	router.GET("/", h.Index)
	router.GET("/health", h.Health)

	api := router.Group("/api")
	api.GET("/tasks", h.GetTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.POST("/tasks", h.CreateTask)
	api.PATCH("/tasks", h.UpdateTask)
	api.DELETE("/tasks", h.DeleteTask)
	api.POST("/enhance", middleware.EnhanceSecret(enhanceSecret), h.EnhanceTask)

	return router
}
