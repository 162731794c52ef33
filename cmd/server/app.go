package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/focusflow/focusflow-api/internal/config"
	"github.com/focusflow/focusflow-api/internal/domain/focus"
	"github.com/focusflow/focusflow-api/internal/normalize"
	"github.com/focusflow/focusflow-api/internal/platform/authprovider"
	"github.com/focusflow/focusflow-api/internal/platform/gemini"
	"github.com/focusflow/focusflow-api/internal/platform/postgres"
	"github.com/focusflow/focusflow-api/internal/service"
	"github.com/focusflow/focusflow-api/internal/service/auth"
	"github.com/focusflow/focusflow-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore    store.UserStore
	taskStore    store.TaskStore
	sessionStore store.SessionStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	focusService     focus.Service
	normalizer       normalize.Normalizer
	userService      service.UserService
	taskService      service.TaskService
	sessionService   service.SessionService
	analyticsService service.AnalyticsService
	scheduleService  service.ScheduleService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
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

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	sessionStore := postgres.NewPostgresSessionStore(db, logger)
	app.sessionStore = sessionStore

	// The session store doubles as the estimator's completed-session reader
	app.focusService, err = focus.NewService(sessionStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create focus service: %w", err)
	}

	// LLM-backed normalization with the keyword fallback; a misconfigured
	// or unreachable model degrades to keyword heuristics, never an error.
	geminiNormalizer, err := gemini.NewNormalizer(
		ctx,
		logger.With("component", "llm_normalizer"),
		cfg.LLM,
	)
	if err != nil {
		logger.Warn("LLM normalizer unavailable, using keyword fallback only",
			"error", err.Error())
		app.normalizer = normalize.WithFallback(nil, logger)
	} else {
		app.normalizer = normalize.WithFallback(geminiNormalizer, logger)
		logger.Info("LLM normalizer initialized successfully")
	}

	// Optional external identity provider
	var provider *authprovider.Client
	if cfg.Auth.SessionProviderURL != "" {
		provider = authprovider.NewClient(cfg.Auth.SessionProviderURL, logger)
		logger.Info("Identity provider session exchange enabled")
	}

	app.userService, err = service.NewUserService(
		app.userStore,
		app.passwordVerifier,
		provider,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		app.taskStore,
		app.normalizer,
		app.focusService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.sessionService, err = service.NewSessionService(
		db,
		app.sessionStore,
		app.taskStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	app.analyticsService, err = service.NewAnalyticsService(
		app.focusService,
		app.sessionStore,
		app.taskStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	app.scheduleService, err = service.NewScheduleService(
		app.taskStore,
		app.focusService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
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
