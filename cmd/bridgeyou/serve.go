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
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bridgeyou/search/internal/config"
	"github.com/bridgeyou/search/internal/db/postgres"
	dbRedis "github.com/bridgeyou/search/internal/db/redis"
	logpkg "github.com/bridgeyou/search/internal/logger"
	"github.com/bridgeyou/search/internal/metrics"
	bankrepo "github.com/bridgeyou/search/internal/repository/bank"
	"github.com/bridgeyou/search/internal/repository/bankcache"
	budgetrepo "github.com/bridgeyou/search/internal/repository/budget"
	postrepo "github.com/bridgeyou/search/internal/repository/post"
	chiTransport "github.com/bridgeyou/search/internal/transport/chi"
	openaiTransport "github.com/bridgeyou/search/internal/transport/openai"
	bankuc "github.com/bridgeyou/search/internal/usecase/bank"
	healthuc "github.com/bridgeyou/search/internal/usecase/health"
	"github.com/bridgeyou/search/internal/usecase/interpret"
	searchuc "github.com/bridgeyou/search/internal/usecase/search"
	"github.com/bridgeyou/search/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	env, cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting BridgeYou search API",
		zap.String("version", version.String()),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("completion_enabled", cfg.Completion.APIKey != ""),
		zap.Bool("auth_enabled", cfg.Auth.JWTSecret != ""),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	ctx := context.Background()

	// Relational store
	pg, err := postgres.NewStore(ctx, postgres.Config{
		DSN:            cfg.Database.DSN,
		MaxConns:       cfg.Database.MaxConns,
		ConnectTimeout: time.Duration(cfg.Database.ConnectTimeoutSec) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pg.Close()
	logger.Info("Connected to database")

	if cfg.Database.Migrate {
		if err := pg.MigrateToLatest(); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("Migrations applied")
	}

	// Bank directory cache: process-local, optionally backed by a shared store.
	// Pass nil interfaces (not typed nil pointers) when the cache is disabled.
	var (
		sharedDir   bankcache.Directory
		cachePinger healthuc.Pinger
		kv          *dbRedis.Store
	)
	if cfg.Cache.Enabled {
		kv, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return fmt.Errorf("create cache store: %w", err)
		}
		defer kv.Close()

		if err := kv.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			return fmt.Errorf("cache not ready: %w", err)
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))

		sharedDir = bankcache.NewShared(kv, cfg.Cache.TTL(), logger)
		cachePinger = kv
	}

	resolver := bankuc.New(bankrepo.New(pg), bankcache.NewMemory(sharedDir), logger)

	// Completion provider. Go gotcha: (*Completer)(nil) wrapped in an interface != nil.
	var (
		completer         interpret.Completer
		completionChecker healthuc.CompletionChecker
	)
	if cfg.Completion.APIKey != "" {
		c := openaiTransport.NewCompleter(&openaiTransport.Config{
			APIKey:  cfg.Completion.APIKey,
			BaseURL: cfg.Completion.BaseURL,
			Model:   cfg.Completion.Model,
			Timeout: cfg.Completion.Timeout(),
			Logger:  logger,
		})
		completer = c
		completionChecker = c
		logger.Info("Completion provider configured", zap.String("model", cfg.Completion.Model))
	} else {
		logger.Warn("No completion API key, natural-language search falls back to keywords")
	}

	interpreter := interpret.New(completer, logger)
	if completer != nil && cfg.Completion.DailyTokenLimit > 0 {
		tokenBudget := interpret.NewTokenBudget(cfg.Completion.DailyTokenLimit, logger)
		if kv != nil {
			tokenBudget.WithCounter(ctx, budgetrepo.New(kv, 48*time.Hour))
		}
		interpreter.WithBudget(tokenBudget)
		logger.Info("Completion budget enabled", zap.Int64("daily_token_limit", cfg.Completion.DailyTokenLimit))
	}
	searchSvc := searchuc.New(postrepo.New(pg), interpreter, resolver, cfg.Search.PageSize, logger)
	healthSvc := healthuc.New(pg, cachePinger, completionChecker, resolver)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(newCORS(cfg.CORS).Handler)
	r.Use(chiTransport.SessionMiddleware(
		chiTransport.NewSessionVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience),
	))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// newCORS allows the forum front end to call the API from the browser.
func newCORS(cfg config.CORSConfig) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID", "X-Completion-Tokens"},
		MaxAge:         300,
	})
}
