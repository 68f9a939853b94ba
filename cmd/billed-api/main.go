package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"billed/internal/api"
	"billed/internal/config"
	"billed/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPI()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger("billed-api")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	application, err := api.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal("failed to init billed-api", zap.Error(err))
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("billed-api stopped with error", zap.Error(err))
	}
}
