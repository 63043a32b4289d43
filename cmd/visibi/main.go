package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/api"
	"github.com/visibi/brand-monitor/internal/brand"
	"github.com/visibi/brand-monitor/internal/config"
	"github.com/visibi/brand-monitor/internal/fetch"
	"github.com/visibi/brand-monitor/internal/history"
	"github.com/visibi/brand-monitor/internal/llm"
	"github.com/visibi/brand-monitor/internal/monitoring"
	"github.com/visibi/brand-monitor/internal/notifications"
	"github.com/visibi/brand-monitor/internal/scheduler"
	"github.com/visibi/brand-monitor/internal/storage"
	"github.com/visibi/brand-monitor/internal/waitlist"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Infof("Starting %s v%s", config.AppName, config.Version)

	storageClient, err := newStorage(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	completer := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		BaseURL:     cfg.OpenAIBaseURL,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.RequestTimeout,
	})
	if !completer.IsEnabled() {
		logrus.Warn("OPENAI_API_KEY not set, analysis requests will fail with provider_unavailable")
	}

	identifier := brand.NewIdentifier(fetch.NewHTTPPageFetcher(cfg.PageFetchTimeout), cfg.PageFetchTimeout)
	notificationService := notifications.NewService(cfg)
	historyStore := history.NewMemoryStore()

	monitoringService := monitoring.NewService(cfg, identifier, completer, historyStore, storageClient, notificationService)
	waitlistService := waitlist.NewService(waitlist.NewStore(storageClient), monitoringService, notificationService)

	// Start scheduler
	schedulerService := scheduler.NewService(cfg, monitoringService)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Analyze holds the connection for several provider round trips and
	// must give up before the write deadline
	analyzeTimeout := 4*cfg.RequestTimeout + cfg.PageFetchTimeout
	apiServer := api.NewServer(monitoringService, historyStore, waitlistService, monitoringService).
		WithAnalyzeTimeout(analyzeTimeout)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      apiServer.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: analyzeTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func newStorage(cfg *config.Config) (storage.StorageInterface, error) {
	switch cfg.StorageBackend {
	case "azure":
		logrus.Infof("Using Azure Blob storage %s/%s", cfg.StorageAccount, cfg.StorageContainer)
		return storage.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
	default:
		logrus.Infof("Using file storage in %s", cfg.DataDir)
		return storage.NewFileStorage(cfg.DataDir)
	}
}
