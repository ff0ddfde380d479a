package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marketlens/marketlens/internal/cache"
	"github.com/marketlens/marketlens/internal/clients/classifier"
	"github.com/marketlens/marketlens/internal/clients/finnhub"
	"github.com/marketlens/marketlens/internal/config"
	"github.com/marketlens/marketlens/internal/metrics"
	"github.com/marketlens/marketlens/internal/modules/dashboard"
	"github.com/marketlens/marketlens/internal/scheduler"
	"github.com/marketlens/marketlens/internal/server"
	"github.com/marketlens/marketlens/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting MarketLens")

	// Shared response cache and metrics registry
	responseCache := cache.New()
	registry := metrics.NewRegistry()

	// Data provider client
	provider := finnhub.NewClient(cfg.FinnhubBaseURL, cfg.FinnhubAPIKey, registry, log)

	// Optional headline sentiment classifier
	var classify *classifier.Client
	if cfg.SentimentServiceURL != "" {
		classify = classifier.NewClient(cfg.SentimentServiceURL, log)
	} else {
		log.Warn().Msg("SENTIMENT_SERVICE_URL not set, news will be served unscored")
	}

	// Dashboard service
	dash := dashboard.NewService(provider, classify, responseCache, registry, cfg.HistoryDays, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.CacheCleanupSchedule, scheduler.NewCacheCleanupJob(responseCache, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}
	if err := sched.AddJob(cfg.HealthProbeSchedule, scheduler.NewProviderHealthJob(provider, cfg.HealthProbeSymbol, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register provider health job")
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		Dashboard: dash,
		Metrics:   registry,
		DevMode:   cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
