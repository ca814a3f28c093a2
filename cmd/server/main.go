// Package main implements the entry point for the blog API server, which
// serves user signup/signin and blog post endpoints backed by PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"go.uber.org/multierr"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command (up, down, status, version) and exit",
	)
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		fmt.Fprintf(os.Stderr, "blog-api: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and the database, and then either
// executes a migration command or serves HTTP until SIGINT/SIGTERM.
func run(migrateCmd string) (err error) {
	if migrateCmd != "" {
		if err := validateMigrationCommand(migrateCmd); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, logCloser, err := logger.Setup(logger.LoggerConfig{
		Level:    cfg.Server.LogLevel,
		FilePath: cfg.Server.LogFile,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer func() {
		err = multierr.Append(err, logCloser.Close())
	}()

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"password_hashing", cfg.Auth.PasswordHashing)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		return multierr.Append(runMigrations(ctx, db, log, migrateCmd), db.Close())
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return multierr.Append(err, db.Close())
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
