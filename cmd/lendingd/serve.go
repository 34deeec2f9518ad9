package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pustakalab/lending/config"
	"github.com/pustakalab/lending/httpapi"
	"github.com/pustakalab/lending/lendingstore"
	"github.com/pustakalab/lending/lendingstore/memoryengine"
	"github.com/pustakalab/lending/lendingstore/postgresengine"
	"github.com/pustakalab/lending/shell"
)

const serverReadHeaderTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the lending HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "path to an optional config file")

	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := buildLogger(cfg)

	store, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	api := httpapi.NewAPI(store, httpapi.WithLogger(logger))

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.NewRouter(api),
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr, "engine", cfg.Engine)

		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	return nil
}

// buildLogger assembles the shared slog-backed logger per config.
func buildLogger(cfg config.Config) *shell.SlogLogger {
	level := slog.LevelInfo

	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if cfg.LogJSON {
		return shell.NewJSONSlogLogger(level)
	}

	return shell.NewTextSlogLogger(level)
}

// buildStore constructs the configured store engine. The returned cleanup
// closes the underlying pool; it is a no-op for the memory engine.
func buildStore(ctx context.Context, cfg config.Config, logger *shell.SlogLogger) (lendingstore.Store, func(), error) {
	noop := func() {}

	switch cfg.Engine {
	case config.EngineMemory:
		return memoryengine.NewStore(), noop, nil

	case config.EngineSQLite:
		db, err := config.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}

		store, err := postgresengine.NewStoreFromSQLDB(db,
			postgresengine.WithDialect(postgresengine.DialectSQLite),
			postgresengine.WithLogger(logger),
		)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}

		if err = bootstrapSchema(ctx, cfg, store); err != nil {
			_ = db.Close()
			return nil, noop, err
		}

		return store, func() { _ = db.Close() }, nil

	case config.EnginePostgres:
		return buildPostgresStore(ctx, cfg, logger)

	default:
		return nil, noop, fmt.Errorf("%w: %q", config.ErrUnknownEngine, cfg.Engine)
	}
}

func buildPostgresStore(ctx context.Context, cfg config.Config, logger *shell.SlogLogger) (lendingstore.Store, func(), error) {
	noop := func() {}

	var (
		store   postgresengine.Store
		cleanup func()
		err     error
	)

	switch cfg.Adapter {
	case config.AdapterPGX:
		pool, poolErr := config.NewPGXPool(ctx, cfg.PostgresDSN)
		if poolErr != nil {
			return nil, noop, poolErr
		}

		cleanup = pool.Close
		store, err = postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))

	case config.AdapterSQLX:
		db, openErr := config.NewSQLXPool(cfg.PostgresDSN)
		if openErr != nil {
			return nil, noop, openErr
		}

		cleanup = func() { _ = db.Close() }
		store, err = postgresengine.NewStoreFromSQLX(db, postgresengine.WithLogger(logger))

	case config.AdapterSQLDB:
		db, openErr := config.NewSQLDBPool(cfg.PostgresDSN)
		if openErr != nil {
			return nil, noop, openErr
		}

		cleanup = func() { _ = db.Close() }
		store, err = postgresengine.NewStoreFromSQLDB(db, postgresengine.WithLogger(logger))

	default:
		return nil, noop, fmt.Errorf("%w: %q", config.ErrUnknownAdapter, cfg.Adapter)
	}

	if err != nil {
		cleanup()
		return nil, noop, err
	}

	if err = bootstrapSchema(ctx, cfg, store); err != nil {
		cleanup()
		return nil, noop, err
	}

	return store, cleanup, nil
}

func bootstrapSchema(ctx context.Context, cfg config.Config, store postgresengine.Store) error {
	if !cfg.EnsureSchema {
		return nil
	}

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}
