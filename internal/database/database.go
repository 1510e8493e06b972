// Package database opens the relational store that backs the tasks table.
//
// Two drivers are supported: postgres (github.com/lib/pq) for deployments
// and sqlite3 (github.com/mattn/go-sqlite3) for local development and tests.
// Both accept the same $N placeholder queries, provided placeholders first
// appear in ascending order.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	pingTimeout = 5 * time.Second
)

var schema = map[string][]string{
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS tasks (
			id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title          TEXT NOT NULL CHECK (btrim(title) <> ''),
			enhanced_title TEXT,
			completed      BOOLEAN NOT NULL DEFAULT FALSE,
			user_email     TEXT,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks (created_at DESC)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS tasks (
			id             TEXT PRIMARY KEY,
			title          TEXT NOT NULL CHECK (trim(title) <> ''),
			enhanced_title TEXT,
			completed      BOOLEAN NOT NULL DEFAULT 0,
			user_email     TEXT,
			created_at     TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks (created_at DESC)`,
	},
}

// Open connects to the store and verifies the connection with a ping.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if _, ok := schema[driver]; !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	return db, nil
}

// EnsureSchema creates the tasks table and its index when missing.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	statements, ok := schema[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure tasks schema: %w", err)
		}
	}
	return nil
}

// OpenMemory returns a migrated in-memory SQLite store.
func OpenMemory(ctx context.Context) (*sql.DB, error) {
	db, err := Open(ctx, DriverSQLite, ":memory:")
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(ctx, db, DriverSQLite); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
