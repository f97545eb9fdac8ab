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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/frontsearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/frontsearch/internal/logger"
	"github.com/kailas-cloud/frontsearch/internal/metrics"
	"github.com/kailas-cloud/frontsearch/internal/repository/backend"
	itemrepo "github.com/kailas-cloud/frontsearch/internal/repository/item"
	chiTransport "github.com/kailas-cloud/frontsearch/internal/transport/chi"
	"github.com/kailas-cloud/frontsearch/internal/usecase/fuzzy"
	healthuc "github.com/kailas-cloud/frontsearch/internal/usecase/health"
	itemuc "github.com/kailas-cloud/frontsearch/internal/usecase/item"
	searchuc "github.com/kailas-cloud/frontsearch/internal/usecase/search"
	"github.com/kailas-cloud/frontsearch/internal/usecase/searchcache"
	"github.com/kailas-cloud/frontsearch/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting frontsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	items := itemrepo.New(store, cfg.Storage.KeyPrefix)
	if err := items.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure search index: %w", err)
	}

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterHTTPMetrics()

	// Composition root: backend -> cache -> router
	searchBackend := backend.New(store, cfg.Storage.KeyPrefix).WithPageSize(cfg.Search.DefaultPageSize)
	cache := searchcache.New(searchBackend, fuzzy.Options{
		IntraMax:        cfg.Search.IntraMax,
		MaxPermuteTerms: cfg.Search.MaxPermuteTerms,
	}, logger).
		WithFetchLimit(cfg.Search.FetchLimit).
		WithMetrics(metrics.CacheRequestsTotal, metrics.CacheFetchDuration,
			metrics.CacheEntries, metrics.PermutationsTruncatedTotal)

	searchSvc := searchuc.New(searchBackend, cache).WithDurationMetric(metrics.SearchDuration)
	itemSvc := itemuc.New(items).WithInvalidator(cache)
	healthSvc := healthuc.New(store, items)

	server := chiTransport.NewServer(searchSvc, itemSvc, healthSvc, logger).
		WithPageSize(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize).
		WithCachePurger(cache)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(chiTransport.RateLimitMiddleware(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst))
	r.Use(metrics.Middleware("/metrics"))
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-sigCtx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully", zap.Int("cached_datasets", cache.Len()))
	return nil
}
