// Package api implements the remote store the web application talks to:
// bills CRUD, login, receipt files and the status-change feed.
package api

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"billed/internal/api/auth"
	"billed/internal/api/handlers"
	"billed/internal/api/middleware"
	"billed/internal/api/repository"
	"billed/internal/api/service"
	"billed/internal/api/ws"
	"billed/internal/config"
)

// App wires billed-api dependencies.
type App struct {
	server *Server
	db     *sql.DB
	logger *zap.Logger
}

// NewApp constructs the application graph and applies migrations.
func NewApp(cfg *config.API, logger *zap.Logger) (*App, error) {
	db, err := NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	receipts, err := NewDiskReceipts(cfg.Files.Dir, cfg.Files.BaseURL)
	if err != nil {
		db.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)

	userRepo := repository.NewUserRepository(db)
	billRepo := repository.NewBillRepository(db)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.TokenTTL())

	authService := service.NewAuthService(userRepo, hasher, tokens, logger)
	billsService := service.NewBillsService(billRepo, receipts, hub, logger)

	routes := Routes{
		Login:       handlers.NewLoginHandler(authService),
		Signup:      handlers.NewSignupHandler(authService),
		Bills:       handlers.NewBillHandlers(billsService, logger),
		Updates:     handlers.NewUpdatesHandler(hub, logger),
		Health:      handlers.NewHealthHandler(),
		ReceiptsDir: receipts.Dir(),
	}

	server := NewServer(cfg.HTTPAddress(), NewRouter(routes, middleware.Auth(tokens)), logger)

	return &App{server: server, db: db, logger: logger}, nil
}

// Run starts the HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
