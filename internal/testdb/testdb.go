// Package testdb provides utilities for database-backed tests. Tests
// run inside a transaction that is rolled back afterwards, so they can
// run in parallel against one database without interfering and without
// manual cleanup.
package testdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// GetTestDatabaseURL returns the database URL for integration tests,
// checking DATABASE_URL and FLOCK_TEST_DB_URL in that order.
func GetTestDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("FLOCK_TEST_DB_URL")
}

// GetTestDB opens a connection to the test database, applies
// migrations, and registers a cleanup that closes it. The test is
// skipped when no test database is configured.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("no test database configured (set DATABASE_URL or FLOCK_TEST_DB_URL)")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	setupSchema(t, db)
	return db
}

// WithTx executes a test function within a transaction that is always
// rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// setupSchema runs the goose migrations against the test database.
func setupSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	root, err := findProjectRoot()
	require.NoError(t, err, "failed to find project root")

	migrationsDir := filepath.Join(root, "internal", "platform", "postgres", "migrations")
	require.DirExists(t, migrationsDir)

	goose.SetLogger(goose.NopLogger())
	goose.SetTableName("schema_migrations")
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, migrationsDir), "failed to run migrations")
}

// findProjectRoot walks upwards from the working directory until it
// finds go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}
