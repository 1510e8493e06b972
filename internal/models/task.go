package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a row of the tasks table. EnhancedTitle and UserEmail are nil
// until set and serialize as null.
type Task struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	EnhancedTitle *string   `json:"enhanced_title"`
	Completed     bool      `json:"completed"`
	UserEmail     *string   `json:"user_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DisplayTitle is the enhanced title when one has arrived, the original otherwise.
func (t Task) DisplayTitle() string {
	if t.IsEnhanced() {
		return *t.EnhancedTitle
	}
	return t.Title
}

// IsEnhanced reports whether a non-empty enhanced title is present.
func (t Task) IsEnhanced() bool {
	return t.EnhancedTitle != nil && *t.EnhancedTitle != ""
}

// TaskUpdate carries the user-editable fields of a PATCH. Nil fields are left untouched.
type TaskUpdate struct {
	Title     *string
	Completed *bool
}

func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Completed == nil
}

type CreateTaskRequest struct {
	Title     *string `json:"title"`
	UserEmail *string `json:"userEmail,omitempty"`
}

type UpdateTaskRequest struct {
	ID        string  `json:"id"`
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct {
	Success bool `json:"success"`
}
