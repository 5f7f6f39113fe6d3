package main

import (
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// migrationsDir is where the goose SQL migrations live, relative to
// the repository root.
const migrationsDir = "internal/platform/postgres/migrations"

// migrationTableName is the table goose uses to track applied
// migrations.
const migrationTableName = "schema_migrations"

// runMigrations executes the given goose command (up, down, status)
// against the application's database. The schema can equally be
// provisioned out of band; this runner is a convenience for
// development and deployment.
func (app *application) runMigrations(command string) error {
	goose.SetLogger(&slogGooseLogger{logger: app.logger})
	goose.SetTableName(migrationTableName)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.Up(app.db, migrationsDir)
	case "down":
		return goose.Down(app.db, migrationsDir)
	case "status":
		return goose.Status(app.db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}
}

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), slog.String("source", "goose"))
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...), slog.String("source", "goose"))
}
