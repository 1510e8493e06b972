package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelbonilla1/ai-automation/internal/database"
	"github.com/miguelbonilla1/ai-automation/internal/models"
)

// setupTestRepo returns a repository over a fresh in-memory SQLite store
// whose clock advances one second per insert.
func setupTestRepo(t *testing.T) *Tasks {
	t.Helper()

	db, err := database.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewTasks(db)
	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func ptr[T any](v T) *T { return &v }

func TestTasks_Create(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	task, err := repo.Create(ctx, "  Buy milk  ", nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.Completed)
	assert.Nil(t, task.EnhancedTitle)
	assert.Nil(t, task.UserEmail)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestTasks_CreateWithEmail(t *testing.T) {
	repo := setupTestRepo(t)

	task, err := repo.Create(context.Background(), "Call mom", ptr(" ana@example.com "))
	require.NoError(t, err)

	require.NotNil(t, task.UserEmail)
	assert.Equal(t, "ana@example.com", *task.UserEmail)
}

func TestTasks_ListNewestFirst(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, title, nil)
		require.NoError(t, err)
	}

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	assert.Equal(t, "first", tasks[2].Title)
}

func TestTasks_ListEmpty(t *testing.T) {
	repo := setupTestRepo(t)

	tasks, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTasks_Get(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Water plants", nil)
	require.NoError(t, err)

	t.Run("existing task", func(t *testing.T) {
		found, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Water plants", found.Title)
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTasks_Update(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Original", nil)
	require.NoError(t, err)

	t.Run("completed only", func(t *testing.T) {
		updated, err := repo.Update(ctx, created.ID, models.TaskUpdate{Completed: ptr(true)})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, "Original", updated.Title)

		found, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, found.Completed)
		assert.Equal(t, "Original", found.Title)
	})

	t.Run("title only is trimmed", func(t *testing.T) {
		updated, err := repo.Update(ctx, created.ID, models.TaskUpdate{Title: ptr("  Renamed ")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.True(t, updated.Completed)
	})

	t.Run("both fields", func(t *testing.T) {
		updated, err := repo.Update(ctx, created.ID, models.TaskUpdate{Title: ptr("Both"), Completed: ptr(false)})
		require.NoError(t, err)
		assert.Equal(t, "Both", updated.Title)
		assert.False(t, updated.Completed)
	})

	t.Run("no fields returns current row", func(t *testing.T) {
		updated, err := repo.Update(ctx, created.ID, models.TaskUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "Both", updated.Title)
	})

	t.Run("missing task is a store error", func(t *testing.T) {
		_, err := repo.Update(ctx, uuid.New(), models.TaskUpdate{Completed: ptr(true)})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestTasks_UpdateKeepsEnhancedTitle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Buy milk", nil)
	require.NoError(t, err)
	require.NoError(t, repo.SetEnhancedTitle(ctx, created.ID, "Buy organic milk"))

	updated, err := repo.Update(ctx, created.ID, models.TaskUpdate{Title: ptr("Buy oat milk")})
	require.NoError(t, err)

	require.NotNil(t, updated.EnhancedTitle)
	assert.Equal(t, "Buy organic milk", *updated.EnhancedTitle)
	assert.Equal(t, "Buy oat milk", updated.Title)
}

func TestTasks_SetEnhancedTitle_LastWriteWins(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Plan trip", nil)
	require.NoError(t, err)

	require.NoError(t, repo.SetEnhancedTitle(ctx, created.ID, "X"))
	require.NoError(t, repo.SetEnhancedTitle(ctx, created.ID, "X"))
	found, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.EnhancedTitle)
	assert.Equal(t, "X", *found.EnhancedTitle)

	require.NoError(t, repo.SetEnhancedTitle(ctx, created.ID, "Y"))
	found, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Y", *found.EnhancedTitle)
	assert.Equal(t, "Plan trip", found.Title)
	assert.False(t, found.Completed)
}

func TestTasks_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "To be deleted", nil)
	require.NoError(t, err)

	t.Run("delete existing", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		for _, task := range tasks {
			assert.NotEqual(t, created.ID, task.ID)
		}
	})

	t.Run("delete missing (no error)", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, uuid.New()))
	})
}
