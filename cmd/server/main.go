package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/catalogadmin/internal/config"
	"github.com/JonMunkholm/catalogadmin/internal/core"
	_ "github.com/JonMunkholm/catalogadmin/internal/core/entities" // Register all entities
	"github.com/JonMunkholm/catalogadmin/internal/kvstore"
	"github.com/JonMunkholm/catalogadmin/internal/logging"
	"github.com/JonMunkholm/catalogadmin/internal/web"
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
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"database", cfg.Database.Enabled(),
		"preferences", cfg.Preferences.Backend,
		"page_size", cfg.Table.DefaultPageSize,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	var pool *pgxpool.Pool
	if cfg.Database.Enabled() {
		pool, err = connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
	}

	// Rows come from PostgreSQL when configured, else from the seeded catalog
	var source core.Source
	if pool != nil {
		core.QueryTimeout = cfg.Database.QueryTimeout
		source = core.NewPostgresSource(pool, logger)
	} else {
		source = core.NewMemorySource()
		logger.Info("no database configured, serving the seeded catalog")
	}

	prefs, closePrefs, err := openPreferences(ctx, cfg.Preferences, pool)
	if err != nil {
		logger.Error("failed to open preference store", "backend", cfg.Preferences.Backend, "error", err)
		os.Exit(1)
	}
	defer closePrefs()

	service := core.NewService(source, core.ServiceOptions{
		DefaultPageSize:   cfg.Table.DefaultPageSize,
		DisablePagination: !cfg.Table.Pagination,
		Logger:            logger,
	})

	logger.Info("entities registered",
		"count", core.EntityCount(),
		"groups", len(core.Groups()),
	)

	server := web.NewServer(service, prefs, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// connect opens and verifies the connection pool.
func connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}

	// Apply pool configuration from config
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}
	return pool, nil
}

// openPreferences returns the column preference store of the configured
// backend and a function releasing it.
func openPreferences(ctx context.Context, cfg config.PreferencesConfig, pool *pgxpool.Pool) (kvstore.Store, func(), error) {
	switch cfg.Backend {
	case "pudge":
		store, err := kvstore.OpenPudge(cfg.PudgePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Warn("close preference store", "error", err)
			}
		}, nil
	case "postgres":
		if pool == nil {
			return nil, nil, errors.New("postgres preferences require DATABASE_URL")
		}
		store := kvstore.NewPostgres(pool, cfg.Timeout)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		return kvstore.NewMemory(), func() {}, nil
	}
}
