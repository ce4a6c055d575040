package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/killallgit/practitioners-pod/api"
	"github.com/killallgit/practitioners-pod/api/middleware"
	"github.com/killallgit/practitioners-pod/internal/services/autosync"
	"github.com/killallgit/practitioners-pod/internal/services/episodes"
	"github.com/killallgit/practitioners-pod/pkg/version"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start The Practitioners Pod API server with the configured settings.

The database schema is migrated on startup. YouTube sync is only
available to the admin API when an API key and channel ID are set.

Example:
  podsite serve
  podsite serve --port 9090
  podsite serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	// Flags win over config
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	deps, closeDB, err := openDependencies(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	srv := api.NewServer(cfg, deps)
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if deps.Episodes.CanSync() && cfg.YouTube.SyncInterval > 0 {
		syncer := autosync.NewService(deps.Episodes, cfg.YouTube.SyncInterval,
			func(ctx context.Context, _ *episodes.SyncResult) {
				middleware.InvalidatePaths(ctx, deps.Cache, middleware.SyncedPaths...)
			})
		syncer.Start(ctx)
		defer syncer.Stop()
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	slog.Info("server started",
		"name", version.Name,
		"version", version.Version,
		"addr", srv.Addr(),
		"environment", cfg.Environment,
		"youtube_sync", deps.Episodes.CanSync())

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case runErr = <-serverErr:
		slog.Error("server stopped unexpectedly", "error", runErr)
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server gracefully stopped")
	return runErr
}
