package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/resep-nusantara/config"
	"github.com/pageza/resep-nusantara/internal/logging"
	"github.com/pageza/resep-nusantara/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.Setup(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := server.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize server", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Warn("error closing server resources", slog.Any("error", err))
		}
	}()

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", cfg.Addr()),
			slog.String("environment", string(cfg.Environment)))
		errChan <- srv.Run(ctx)
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		return
	case sig := <-quit:
		logger.Info("received signal", slog.String("signal", sig.String()))
	}

	cancel()
	if err := <-errChan; err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
