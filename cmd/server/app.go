package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	apiMiddleware "github.com/phrazzld/blog-api/internal/api/middleware"
	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/phrazzld/blog-api/internal/platform/tracing"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/phrazzld/blog-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

// metricsNamespace prefixes every exported Prometheus metric.
const metricsNamespace = "blog_api"

// tracingFlushTimeout bounds how long cleanup waits for pending spans.
const tracingFlushTimeout = 5 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	blogStore store.BlogStore

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher

	registry *prometheus.Registry
	metrics  *apiMiddleware.Metrics
	tracing  *tracing.Provider
}

// newApplication wires the PostgreSQL stores on db into a new application.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app, err := newApplicationWithStores(
		cfg,
		logger,
		postgres.NewPostgresUserStore(db, logger),
		postgres.NewPostgresBlogStore(db, logger),
	)
	if err != nil {
		return nil, err
	}

	app.db = db
	if err := app.registry.Register(collectors.NewDBStatsCollector(db, "blog")); err != nil {
		return nil, fmt.Errorf("failed to register database metrics: %w", err)
	}
	return app, nil
}

// newApplicationWithStores builds the application around the given stores.
func newApplicationWithStores(
	cfg *config.Config,
	logger *slog.Logger,
	userStore store.UserStore,
	blogStore store.BlogStore,
) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		userStore: userStore,
		blogStore: blogStore,
		registry:  prometheus.NewRegistry(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.passwordHasher, err = auth.NewPasswordHasher(cfg.Auth.PasswordHashing, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	if cfg.Auth.PasswordHashing == auth.HashingPlaintext {
		logger.Warn("passwords are stored and compared in plaintext; use bcrypt for new deployments")
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = apiMiddleware.NewMetrics(metricsNamespace, app.registry)

	app.tracing, err = tracing.New(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if cfg.Tracing.Enabled {
		logger.Info("span export enabled", "sample_ratio", cfg.Tracing.SampleRatio)
	}

	return app, nil
}

// cleanup releases application resources.
func (app *application) cleanup() error {
	var err error
	if app.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), tracingFlushTimeout)
		err = multierr.Append(err, app.tracing.Shutdown(ctx))
		cancel()
	}
	if app.db != nil {
		err = multierr.Append(err, app.db.Close())
	}
	if err != nil {
		app.logger.Error("error during application cleanup", "error", err)
		return err
	}
	app.logger.Info("application shutdown completed")
	return nil
}
