package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/andesmarket/bulkimport/internal/config"
	"github.com/andesmarket/bulkimport/internal/core"
	_ "github.com/andesmarket/bulkimport/internal/core/schemas" // Register all entities
	"github.com/andesmarket/bulkimport/internal/history"
	"github.com/andesmarket/bulkimport/internal/logging"
	"github.com/andesmarket/bulkimport/internal/remote"
	"github.com/andesmarket/bulkimport/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"remote_base_url", cfg.Remote.BaseURL,
		"history_enabled", cfg.Database.Enabled(),
		"pipeline_max_concurrent", cfg.Pipeline.MaxConcurrent,
	)

	ctx := context.Background()

	// Run history is optional; without DATABASE_URL the service runs
	// validation-only with no persistence.
	var historyStore core.HistoryStore
	if cfg.Database.Enabled() {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		store := history.NewStore(pool)
		if err := store.Init(ctx); err != nil {
			slog.Error("failed to initialize history store", "error", err)
			os.Exit(1)
		}
		historyStore = store

		if u, err := url.Parse(cfg.Database.URL); err == nil {
			slog.Info("run history enabled", "database", strings.TrimPrefix(u.Path, "/"))
		} else {
			slog.Info("run history enabled")
		}
	}

	client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout)

	service := core.NewService(client, historyStore, cfg.Pipeline.MaxConcurrent, cfg.Pipeline.MaxWaitTime)
	service.SetSampleLimit(cfg.Remote.SampleLimit)

	slog.Info("entities registered", "count", core.SchemaCount())
	for _, schema := range core.All() {
		slog.Debug("entity", "key", schema.Key, "fields", len(schema.Fields))
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if active := service.LimiterActive(); active > 0 {
			slog.Info("waiting for active runs to complete", "active", active)
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
