package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/satoriell/mediatrack/internal/api"
	"github.com/satoriell/mediatrack/internal/catalog"
	"github.com/satoriell/mediatrack/internal/config"
	"github.com/satoriell/mediatrack/internal/models"
	"github.com/satoriell/mediatrack/internal/services/jikan"
	"github.com/satoriell/mediatrack/internal/services/mangadex"
	"github.com/satoriell/mediatrack/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Mediatrack")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 4. Initialize provider clients
	mangadexClient, err := mangadex.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize MangaDex client: %w", err)
	}
	logger.Info("MangaDex client initialized")

	jikanClient, err := jikan.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize Jikan client: %w", err)
	}
	logger.Info("Jikan client initialized")

	// 5. Initialize importer
	importer := catalog.NewImporter(db, mangadexClient, jikanClient, logger)

	// 6. Initialize HTTP server
	server := api.NewServer(cfg, db, mangadexClient, jikanClient, importer, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Mediatrack is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("Mediatrack stopped")
	return nil
}
