package web

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"billed/internal/config"
	"billed/internal/router"
	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/views"
)

// App wires the billed-web dependency graph.
type App struct {
	server      *Server
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewApp constructs the application graph. Without a redis address the
// sessions fall back to process memory, which only suits local runs.
func NewApp(cfg *config.Web, logger *zap.Logger) (*App, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, err
	}

	var sessions session.Sessions
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = session.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return nil, err
		}
		sessions = session.NewRedisSessions(redisClient, cfg.SessionTTL())
	} else {
		logger.Warn("no redis addr configured, sessions will not survive restarts")
		sessions = session.NewMemorySessions()
	}

	httpClient := &http.Client{Timeout: 5 * time.Second}
	auth := store.NewClient(cfg.API.BaseURL, httpClient, nil, logger)

	tabs := newTabRegistry(func(sid string) *router.Router {
		scope := sessions.Scope(sid)
		client := store.NewClient(cfg.API.BaseURL, httpClient, sessionTokens{scope: scope}, logger)
		return router.New(router.Deps{
			Sessions: scope,
			Store:    client,
			Views:    renderer,
			Logger:   logger,
		})
	})

	handlers := NewHandlers(sessions, tabs, renderer, auth, logger)
	server := NewServer(cfg.HTTPAddress(), NewRouter(Routes{Handlers: handlers}), logger)

	return &App{server: server, redisClient: redisClient, logger: logger}, nil
}

// Run starts the HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
