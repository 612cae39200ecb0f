package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/presence"
	"github.com/jpalmerr/presence/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// serveCmd starts the presence endpoint.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the presence endpoint",
	Long: `Start the presence endpoint.

The server will:
  - Load configuration from the given YAML file, or from the environment
    (SECRET_KEY, PRESENCE_DB_PATH) when no file is given
  - Store the secret and, unless seed_status is false, an "online" status
  - Serve GET and POST on "/" until interrupted

Exits non-zero if the secret is not configured.

Example:
  SECRET_KEY=change-me presence serve
  presence serve --config /etc/presence/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "", "path to config file (defaults to environment)")
}

// loadConfig reads the file named by --config, or the environment defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		return config.Default()
	}
	return config.Load(configFile)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := config.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	logger.Info("config loaded",
		"port", cfg.Port,
		"store", cfg.Store.Driver,
		"path", cfg.Store.Path,
	)

	p, err := presence.New(config.BuildOptions(cfg, st, logger)...)
	if err != nil {
		return fmt.Errorf("failed to create presence: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- p.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil
	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
