package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cookatlas/backend/config"
	"github.com/cookatlas/backend/internal/database"
	"github.com/cookatlas/backend/internal/logging"
	"github.com/cookatlas/backend/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Must(cfg.LogLevel, cfg.Environment.ConsoleLogs())
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	// PostgreSQL schemas are managed with cmd/migrate.
	if cfg.DBDriver == "sqlite" {
		if err := database.RunMigrations(db, cfg.MigrationsDir, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, db, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}
	defer func() { _ = srv.Close() }()

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
