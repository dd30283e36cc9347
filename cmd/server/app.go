package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/taskline/taskline-api/internal/analysis"
	"github.com/taskline/taskline-api/internal/config"
	"github.com/taskline/taskline-api/internal/platform/logger"
	"github.com/taskline/taskline-api/internal/platform/openai"
	"github.com/taskline/taskline-api/internal/platform/postgres"
	"github.com/taskline/taskline-api/internal/service/auth"
	"github.com/taskline/taskline-api/internal/store"
)

// application bundles the configured dependencies of the server.
type application struct {
	config             *config.Config
	logger             *slog.Logger
	db                 *sql.DB
	taskStore          store.TaskStore
	userStore          store.UserStore
	jwtService         auth.JWTService
	passwordVerifier   auth.PasswordVerifier
	credentialVerifier auth.CredentialVerifier
	analyzer           analysis.Analyzer
}

// newApplication loads configuration and wires up every dependency:
// logging, database (with migrations), stores, auth services, and the AI
// gateway client.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	credentialVerifier, err := auth.NewGoogleVerifier(ctx, cfg.Auth.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google verifier: %w", err)
	}

	analyzer, err := openai.NewClient(log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	return &application{
		config:             cfg,
		logger:             log,
		db:                 db,
		taskStore:          postgres.NewPostgresTaskStore(db, log),
		userStore:          postgres.NewPostgresUserStore(db, log),
		jwtService:         jwtService,
		passwordVerifier:   auth.NewBcryptVerifier(),
		credentialVerifier: credentialVerifier,
		analyzer:           analyzer,
	}, nil
}

// setupDatabase opens the database connection, configures the pool, and
// verifies connectivity.
func setupDatabase(ctx context.Context, cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
