package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"billed/internal/config"
	"billed/internal/logging"
	"billed/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWeb()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger("billed-web")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	application, err := web.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal("failed to init billed-web", zap.Error(err))
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("billed-web stopped with error", zap.Error(err))
	}
}
