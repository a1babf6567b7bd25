package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"store-monitor-backend/config"
	"store-monitor-backend/internal/api"
	"store-monitor-backend/internal/artifact"
	"store-monitor-backend/internal/db"
	"store-monitor-backend/internal/ingest"
	"store-monitor-backend/internal/report"
	"store-monitor-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "storemond ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bulk-load the dataset before serving. Malformed schedules abort boot:
	// bad input data fails fast rather than surfacing at report time.
	if cfg.Ingest.Enabled {
		loader := ingest.NewLoader(&cfg.Ingest, appStore)
		if err := loader.Run(ctx); err != nil {
			logger.Fatalf("dataset ingestion failed: %v", err)
		}
		logger.Println("dataset ingestion complete")
	} else {
		logger.Println("ingestion disabled; serving the existing dataset")
	}

	artifacts, err := artifact.NewStore(cfg.Reports.OutputDir)
	if err != nil {
		logger.Fatalf("failed to initialize report artifact store: %v", err)
	}

	reportSvc := report.NewService(appStore, artifacts, cfg.WorkerPool.Size)

	// Initialize router
	router := api.NewRouter(reportSvc, appStore, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
