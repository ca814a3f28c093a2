package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/platform/postgres"
)

// migrationCommands are the goose commands accepted by -migrate.
var migrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
}

func validateMigrationCommand(cmd string) error {
	if !migrationCommands[cmd] {
		return fmt.Errorf("unknown migration command %q (want up, down, status or version)", cmd)
	}
	return nil
}

// runMigrations executes a migration command against db.
func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger, cmd string) error {
	if err := validateMigrationCommand(cmd); err != nil {
		return err
	}

	logger.Info("executing migrations", "command", cmd)
	if err := postgres.Migrate(ctx, db, logger, cmd); err != nil {
		return err
	}
	logger.Info("migrations finished", "command", cmd)
	return nil
}
