package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todolist-api/internal/config"
	"github.com/phrazzld/todolist-api/internal/platform/postgres"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/phrazzld/todolist-api/internal/service/auth"
	"github.com/phrazzld/todolist-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	tokenService auth.TokenService
	authService  auth.AuthenticationService
	userService  service.UserService
	taskService  service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must be established (and migrated) beforehand.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		userStore: postgres.NewPostgresUserStore(db, logger),
		taskStore: postgres.NewPostgresTaskStore(db, logger),
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// initServices wires the services on top of the application's stores.
func (app *application) initServices() error {
	var err error

	app.tokenService, err = auth.NewTokenService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.logger.Info("token service initialized",
		slog.Int("token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes))

	app.authService, err = auth.NewAuthenticationService(
		app.userStore,
		auth.NewBcryptVerifier(),
		app.tokenService,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create authentication service: %w", err)
	}

	hasher := auth.NewBcryptHasher(app.config.Auth.BcryptCost)
	if hasher.Cost() != app.config.Auth.BcryptCost {
		app.logger.Warn("configured bcrypt cost out of range, using default",
			slog.Int("configured_cost", app.config.Auth.BcryptCost),
			slog.Int("bcrypt_cost", hasher.Cost()))
	}

	app.userService, err = service.NewUserService(app.userStore, hasher, app.db, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, app.userStore, app.db, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	return nil
}

// bootstrapAdmin creates the configured administrator account on first start.
func (app *application) bootstrapAdmin(ctx context.Context) error {
	if !app.config.Auth.HasBootstrapAdmin() {
		return nil
	}

	user, created, err := app.userService.EnsureAdmin(ctx,
		app.config.Auth.BootstrapAdminUsername,
		app.config.Auth.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin user: %w", err)
	}

	if created {
		app.logger.Info("bootstrap admin created", slog.Int64("user_id", user.ID))
	} else {
		app.logger.Debug("bootstrap admin already exists", slog.Int64("user_id", user.ID))
	}
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
