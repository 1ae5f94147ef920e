package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/todolist-api/internal/platform/postgres"
)

// runMigrations executes a single goose command against db. It is called
// from main when the -migrate flag is set; the server is not started.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	logger.Info("executing migrations", slog.String("command", command))
	return postgres.Migrate(ctx, db, command, logger)
}
