package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/urfave/cli/v3"

	"github.com/mzahradnik/bistro/internal/adapters/http/api"
	"github.com/mzahradnik/bistro/internal/adapters/http/swagger"
	app "github.com/mzahradnik/bistro/internal/app"
	"github.com/mzahradnik/bistro/internal/config"
	"github.com/mzahradnik/bistro/pkg/logger"
	"github.com/mzahradnik/bistro/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout         = 10 * time.Second
	writeTimeout        = 10 * time.Second
	idleTimeout         = 60 * time.Second
	readHeaderTimeout   = 5 * time.Second
	shutdownTimeout     = 30 * time.Second
	poolMetricsInterval = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init("bistro"); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "bistro",
		Usage: "Read-only content API for the bistro website",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API server",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return serve(ctx)
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply embedded schema and seed migrations",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return migrate(ctx)
				},
			},
		},
		// Plain `bistro` starts the server.
		Action: func(ctx context.Context, _ *cli.Command) error {
			return serve(ctx)
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	log := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(log),
		app.WithDatabaseURL(cfg.DatabaseURL()),
		app.WithMaxConns(cfg.DBMaxConns),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	// Start pool metrics updater
	go startPoolMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register the docs UI and the OpenAPI document.
	swagger.Register(ctx, mux)

	// Register content API routes with the service dependency.
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux, cfg.RoutePrefix)

	// Permissive CORS for a public read-only API, then request ids.
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}).Handler(api.RequestIDMiddleware(mux))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or listen failure
	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

func migrate(ctx context.Context) error {
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithDatabaseURL(cfg.DatabaseURL()),
		app.WithMaxConns(cfg.DBMaxConns),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	if err := svc.Migrate(ctx); err != nil {
		return err
	}
	log.Info(ctx, "migrations applied", logger.String("database", cfg.DBName))
	return nil
}

// startPoolMetricsUpdater refreshes the connection pool gauges on a
// fixed interval.
func startPoolMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(poolMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updatePoolMetrics(svc)
		}
	}
}

// updatePoolMetrics copies pgxpool statistics into the gauges.
func updatePoolMetrics(svc *app.Service) {
	stat := svc.PoolStat()
	if stat == nil {
		return
	}
	metrics.UpdatePoolMaxConns(stat.MaxConns())
	metrics.UpdatePoolTotalConns(stat.TotalConns())
	metrics.UpdatePoolIdleConns(stat.IdleConns())
	metrics.UpdatePoolAcquiredConns(stat.AcquiredConns())
}
