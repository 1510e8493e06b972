package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/miguelbonilla1/ai-automation/internal/models"
	"github.com/miguelbonilla1/ai-automation/internal/webhook"
)

// TaskRepository is the store surface the handlers need.
type TaskRepository interface {
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id uuid.UUID) (models.Task, error)
	Create(ctx context.Context, title string, userEmail *string) (models.Task, error)
	Update(ctx context.Context, id uuid.UUID, update models.TaskUpdate) (models.Task, error)
	SetEnhancedTitle(ctx context.Context, id uuid.UUID, enhancedTitle string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// Notifier is told about every successfully created task. It must not block.
type Notifier interface {
	TaskCreated(event webhook.TaskCreated)
}

type Handler struct {
	tasks    TaskRepository
	notifier Notifier
	logger   *slog.Logger
}

func New(tasks TaskRepository, notifier Notifier, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{tasks: tasks, notifier: notifier, logger: logger}
}

func parseId(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// isTypeError reports a body that parsed as JSON but had a field of the wrong type.
func isTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}
