package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mind-engage/mindengage-guidance/internal/config"
	"github.com/mind-engage/mindengage-guidance/internal/logging"
	"github.com/mind-engage/mindengage-guidance/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("server")
	}
}
