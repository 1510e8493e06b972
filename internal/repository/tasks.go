package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/miguelbonilla1/ai-automation/internal/models"
)

// ErrNotFound is returned by Get when no row has the requested id.
var ErrNotFound = errors.New("task not found")

const taskColumns = "id, title, enhanced_title, completed, user_email, created_at"

type scanner interface {
	Scan(dest ...any) error
}

// Tasks is the task repository. Every method is a single statement
// against the store; nothing is cached.
type Tasks struct {
	db  *sql.DB
	now func() time.Time
}

func NewTasks(db *sql.DB) *Tasks {
	return &Tasks{db: db, now: time.Now}
}

// List returns every task, newest first.
func (r *Tasks) List(ctx context.Context) ([]models.Task, error) {
	results := make([]models.Task, 0)

	rows, err := r.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		results = append(results, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return results, nil
}

func (r *Tasks) Get(ctx context.Context, id uuid.UUID) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// Create inserts an incomplete, unenhanced task. Callers validate the
// title; it is trimmed here before storage.
func (r *Tasks) Create(ctx context.Context, title string, userEmail *string) (models.Task, error) {
	var email *string
	if userEmail != nil {
		trimmed := strings.TrimSpace(*userEmail)
		email = &trimmed
	}

	row := r.db.QueryRowContext(ctx, `INSERT INTO
			tasks(id, title, enhanced_title, completed, user_email, created_at)
			VALUES($1, $2, NULL, $3, $4, $5)
			RETURNING `+taskColumns,
		uuid.New(), strings.TrimSpace(title), false, email, r.now().UTC())

	task, err := scanTask(row)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update applies the present fields of update and returns the row as
// stored. A missing id surfaces as a wrapped sql.ErrNoRows.
func (r *Tasks) Update(ctx context.Context, id uuid.UUID, update models.TaskUpdate) (models.Task, error) {
	if update.Empty() {
		row := r.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
		task, err := scanTask(row)
		if err != nil {
			return models.Task{}, fmt.Errorf("update task %s: %w", id, err)
		}
		return task, nil
	}

	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if update.Title != nil {
		args = append(args, strings.TrimSpace(*update.Title))
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Completed != nil {
		args = append(args, *update.Completed)
		sets = append(sets, fmt.Sprintf("completed = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), taskColumns)

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	return task, nil
}

// SetEnhancedTitle overwrites enhanced_title and nothing else. Last write wins.
func (r *Tasks) SetEnhancedTitle(ctx context.Context, id uuid.UUID, enhancedTitle string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE tasks SET enhanced_title = $1 WHERE id = $2", enhancedTitle, id)
	if err != nil {
		return fmt.Errorf("set enhanced title of task %s: %w", id, err)
	}
	return nil
}

// Delete removes the row. Deleting an id that does not exist is not an error.
func (r *Tasks) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// Ping reports whether the store is reachable.
func (r *Tasks) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanTask(row scanner) (models.Task, error) {
	task := models.Task{}
	err := row.Scan(&task.ID, &task.Title, &task.EnhancedTitle, &task.Completed, &task.UserEmail, &task.CreatedAt)
	return task, err
}
