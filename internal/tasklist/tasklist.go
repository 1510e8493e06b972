// Package tasklist holds a front end's local copy of the tasks. Mutations
// go to the API first and touch local state only when the API accepts
// them, so a failed request leaves the list as it was.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/miguelbonilla1/ai-automation/internal/models"
)

var (
	ErrEmptyTitle = errors.New("title cannot be empty")
	ErrUnknown    = errors.New("task not in list")
)

// Store is the remote API the list writes through.
type Store interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title string, userEmail *string) (models.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type List struct {
	store Store

	mu    sync.RWMutex
	tasks []models.Task
}

func New(store Store, initial []models.Task) *List {
	return &List{store: store, tasks: append([]models.Task(nil), initial...)}
}

// Load replaces the local tasks with the remote list.
func (l *List) Load(ctx context.Context) error {
	tasks, err := l.store.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	l.mu.Lock()
	l.tasks = tasks
	l.mu.Unlock()
	return nil
}

// Tasks returns a copy of the local tasks, newest first.
func (l *List) Tasks() []models.Task {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Task(nil), l.tasks...)
}

func (l *List) Find(id uuid.UUID) (models.Task, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.index(id); i >= 0 {
		return l.tasks[i], true
	}
	return models.Task{}, false
}

// Add creates a task and puts it at the top of the list.
func (l *List) Add(ctx context.Context, title string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrEmptyTitle
	}

	task, err := l.store.CreateTask(ctx, title, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("add task: %w", err)
	}

	l.mu.Lock()
	l.tasks = append([]models.Task{task}, l.tasks...)
	l.mu.Unlock()
	return task, nil
}

// SetCompleted marks a task done or not done.
func (l *List) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	if _, err := l.store.UpdateTask(ctx, id, models.TaskUpdate{Completed: &completed}); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	l.update(id, func(t *models.Task) { t.Completed = completed })
	return nil
}

// Toggle flips the completed flag of a task in the list.
func (l *List) Toggle(ctx context.Context, id uuid.UUID) error {
	task, ok := l.Find(id)
	if !ok {
		return ErrUnknown
	}
	return l.SetCompleted(ctx, id, !task.Completed)
}

// Edit renames a task. The enhanced title is kept as is.
func (l *List) Edit(ctx context.Context, id uuid.UUID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	if _, err := l.store.UpdateTask(ctx, id, models.TaskUpdate{Title: &title}); err != nil {
		return fmt.Errorf("edit task: %w", err)
	}

	l.update(id, func(t *models.Task) { t.Title = title })
	return nil
}

func (l *List) Remove(ctx context.Context, id uuid.UUID) error {
	if err := l.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("remove task: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		l.tasks = append(l.tasks[:i:i], l.tasks[i+1:]...)
	}
	return nil
}

// ApplyEnhancement records an enhanced title reported by the poller.
func (l *List) ApplyEnhancement(id uuid.UUID, enhancedTitle string) {
	l.update(id, func(t *models.Task) { t.EnhancedTitle = &enhancedTitle })
}

// EditPrefill is the text an edit of the task starts from.
func (l *List) EditPrefill(id uuid.UUID) string {
	task, ok := l.Find(id)
	if !ok {
		return ""
	}
	return task.DisplayTitle()
}

func (l *List) update(id uuid.UUID, fn func(t *models.Task)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		fn(&l.tasks[i])
	}
}

func (l *List) index(id uuid.UUID) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
