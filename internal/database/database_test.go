package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "root@/tasks")
	assert.Error(t, err)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, EnsureSchema(ctx, db, DriverSQLite))

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEnsureSchema_RejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	db, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, completed, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`,
		"a2b4c7f0-0000-4000-8000-000000000001", "   ", false)
	assert.Error(t, err)
}
