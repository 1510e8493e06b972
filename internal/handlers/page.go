package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miguelbonilla1/ai-automation/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Index server-renders the current task list. A store failure is logged
// and rendered as an empty list.
func (h *Handler) Index(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load tasks for index page", "error", err)
		tasks = []models.Task{}
	}

	c.HTML(http.StatusOK, "index.html", gin.H{"Tasks": tasks})
}
