package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"amr-fleet-monitor/config"
	"amr-fleet-monitor/internal/alert"
	"amr-fleet-monitor/internal/api"
	"amr-fleet-monitor/internal/db"
	"amr-fleet-monitor/internal/logging"
	"amr-fleet-monitor/internal/store"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("service", "fleetd"))
	logger.Info("configuration loaded", zap.String("path", configPath))

	os.Exit(exitCode(logger, run(cfg, logger)))
}

// exitCode logs a failed run and flushes the logger before the process exits.
func exitCode(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("fleetd stopped", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Initialize database
	gormDB, err := db.Init(&cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("database initialized", zap.String("driver", cfg.Database.Driver))

	appStore := store.NewGormStore(gormDB)
	defer func() {
		if err := appStore.Close(); err != nil {
			logger.Error("failed to close store", zap.Error(err))
			return
		}
		logger.Info("store closed")
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var webpushOptions *webpush.Options
	if cfg.Push.Configured() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	}

	switch {
	case !cfg.Alerts.Enabled:
		logger.Info("robot alerts disabled")
	case webpushOptions == nil:
		logger.Warn("robot alerts enabled but VAPID keys are missing, alerts disabled")
	default:
		logger.Info("robot alerts enabled",
			zap.Duration("interval", cfg.Alerts.Interval),
			zap.Int("workers", cfg.WorkerPool.Size))
		pool := alert.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions, logger)
		watcher := alert.NewWatcher(appStore, pool, cfg.Alerts.Interval, logger)
		go watcher.Run(ctx)
	}

	router := api.NewRouter(appStore, api.Options{
		Webpush:         webpushOptions,
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		StatsCacheTTL:   time.Duration(cfg.Server.CacheTTLSeconds) * time.Second,
		Logger:          logger,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("HTTP server ListenAndServe: %w", err)
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}

	logger.Info("server gracefully stopped")
	return nil
}
