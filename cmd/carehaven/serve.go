// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/carehaven/carehaven/internal/config"
	"github.com/carehaven/carehaven/internal/httpapi"
	"github.com/carehaven/carehaven/internal/observability"
)

const defaultShutdownTimeout = 10 * time.Second

// serveConfig holds configuration for the serve command.
type serveConfig struct {
	migrate         bool
	shutdownTimeout time.Duration
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the HTTP API server together with the metrics and health
endpoints. SIGINT and SIGTERM trigger a graceful shutdown.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appCfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := appCfg.Validate(); err != nil {
				return err
			}
			logger := setupLogging(appCfg)
			return runServeWithDeps(cmd.Context(), cfg, appCfg, cmd, logger, nil)
		},
	}

	cmd.Flags().BoolVar(&cfg.migrate, "migrate", true, "apply pending migrations before serving")
	cmd.Flags().DurationVar(&cfg.shutdownTimeout, "shutdown-timeout", defaultShutdownTimeout, "graceful shutdown timeout")

	return cmd
}

// runServeWithDeps starts the API with injectable dependencies and blocks
// until a signal arrives, ctx ends or a server fails.
// If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cfg *serveConfig, appCfg *config.Config, cmd *cobra.Command, logger *slog.Logger, deps *Deps) error {
	deps = deps.withDefaults()

	logger.Info("starting api server",
		"http_addr", appCfg.HTTP.Addr,
		"environment", appCfg.Environment,
	)

	if cfg.migrate {
		if err := autoMigrate(appCfg.Database.URL, deps, logger); err != nil {
			return err
		}
	}

	db, err := deps.DatabaseFactory(ctx, appCfg.Database)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer db.Close()
	logger.Info("connected to database")

	app, err := buildApplication(ctx, appCfg, db, deps, appOptions{mail: true, storage: true}, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		obsServer ObservabilityServer
		metrics   *observability.Metrics
	)
	if appCfg.Metrics.Addr != "" {
		obsServer = deps.ObservabilityServerFactory(appCfg.Metrics.Addr, observability.PingReadiness(db))
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return oops.Code("OBSERVABILITY_START_FAILED").Wrap(err)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability", logger)
		metrics = obsServer.Metrics()
		logger.Info("observability server started", "addr", obsServer.Addr())
	}

	api, err := httpapi.New(httpapi.Config{
		Auth:         app.auth,
		Gate:         app.gate,
		Care:         app.care,
		Metrics:      metrics,
		Logger:       logger,
		Development:  appCfg.IsDevelopment(),
		TokenTTL:     app.tokens.Expiry(),
		SecureCookie: !appCfg.IsDevelopment(),
	})
	if err != nil {
		stopObservability(obsServer, logger)
		return err
	}

	listener, err := deps.ListenerFactory("tcp", appCfg.HTTP.Addr)
	if err != nil {
		stopObservability(obsServer, logger)
		return oops.Code("HTTP_LISTEN_FAILED").With("addr", appCfg.HTTP.Addr).Wrap(err)
	}

	errChan := make(chan error, 1)
	go func() {
		if serveErr := api.Serve(listener); serveErr != nil {
			errChan <- serveErr
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("API server started on " + listener.Addr().String())
	logger.Info("api server ready", "addr", listener.Addr().String())

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case serveErr := <-errChan:
		runErr = serveErr
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer shutdownCancel()

	if err := api.Shutdown(shutdownCtx); err != nil {
		logger.Warn("error stopping api server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			logger.Warn("error stopping observability server", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return runErr
}

// autoMigrate applies pending migrations before the pool opens.
func autoMigrate(databaseURL string, deps *Deps, logger *slog.Logger) error {
	migrator, err := deps.MigratorFactory(databaseURL)
	if err != nil {
		return oops.Code("AUTO_MIGRATION_FAILED").With("operation", "create migrator").Wrap(err)
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			logger.Warn("failed to close migrator", "error", closeErr)
		}
	}()

	if err := migrator.Up(); err != nil {
		return oops.Code("AUTO_MIGRATION_FAILED").With("operation", "apply migrations").Wrap(err)
	}
	logger.Info("database migrations applied")
	return nil
}

// monitorServerErrors cancels ctx when a background server reports an error.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errChan <-chan error, name string, logger *slog.Logger) {
	select {
	case err, ok := <-errChan:
		if ok && err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server error, triggering shutdown", "server", name, "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}

func stopObservability(s ObservabilityServer, logger *slog.Logger) {
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		logger.Warn("failed to stop observability server during cleanup", "error", err)
	}
}
