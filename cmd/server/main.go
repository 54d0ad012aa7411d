package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/megagames/logview/internal/adapter/api"
	"github.com/megagames/logview/internal/adapter/metrics"
	redisstore "github.com/megagames/logview/internal/adapter/repository/redis"
	"github.com/megagames/logview/internal/adapter/repository/records"
	"github.com/megagames/logview/internal/pkg/config"
	"github.com/megagames/logview/internal/pkg/logger"
	"github.com/megagames/logview/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewViewerMetrics()

	// --- Start Admin and Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminMux,
	}

	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store Connection ---
	redisOpts, err := redis.ParseURL(cfg.RedisAddr)
	if err != nil {
		logger.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	store := redisstore.NewTreeStore(redisClient, logger)
	if err := store.Ping(ctx); err != nil {
		// The viewer serves 502s for store reads until the store comes back,
		// so startup proceeds anyway.
		logger.Warn("could not reach the log store", "error", err)
	}

	// --- Initialize Use Cases ---
	gateway := records.NewGateway(store, cfg.StoreBasePath, logger, m, cfg.FetchChunkSize)
	selector := usecase.NewIndexSelector(cfg.StoreBasePath, cfg.DefaultProject, cfg.MaxFanoutDates)
	retriever := usecase.NewRetrieveLogsUseCase(gateway, selector, logger, m, cfg.FanoutPerSec, cfg.DefaultLimit)
	catalog := usecase.NewCatalogUseCase(gateway, cfg.StoreBasePath, cfg.DefaultProject)

	// --- Initialize Viewer Server ---
	viewerServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.NewRouter(logger, retriever, catalog, gateway, cfg.DefaultMonthsBack),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting viewer server", "addr", viewerServer.Addr)
		if err := viewerServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("viewer server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := viewerServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("viewer server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
