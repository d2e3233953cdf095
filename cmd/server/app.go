package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Amecrec/ADIA/internal/config"
	"github.com/Amecrec/ADIA/internal/generation"
	"github.com/Amecrec/ADIA/internal/platform/gemini"
	"github.com/Amecrec/ADIA/internal/platform/postgres"
	"github.com/Amecrec/ADIA/internal/service"
	"github.com/Amecrec/ADIA/internal/service/auth"
	"github.com/Amecrec/ADIA/internal/store"
)

// application holds the shared application dependencies so wiring and
// shutdown stay in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore     store.UserStore
	materialStore store.MaterialStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	orchestrator     *generation.Orchestrator
	materialService  service.MaterialService
	queryService     *service.QueryService
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logging and the database connection must
// already be established.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.materialStore = postgres.NewPostgresMaterialStore(db, logger)

	provider, err := gemini.NewProvider(
		ctx,
		logger.With("component", "llm_provider"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	callTimeout := time.Duration(cfg.LLM.RequestTimeoutSeconds) * time.Second
	app.orchestrator, err = generation.NewOrchestrator(provider, callTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation orchestrator: %w", err)
	}

	materialRepoAdapter := service.NewMaterialRepositoryAdapter(app.materialStore, app.db)

	app.materialService, err = service.NewMaterialService(materialRepoAdapter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create material service: %w", err)
	}

	app.queryService, err = service.NewQueryService(materialRepoAdapter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create query service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
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
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
