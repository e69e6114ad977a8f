package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/cwbudde/hqcflow/internal/backend"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hqcflow",
	Short: "Hybrid classical/quantum optimization workflow runner",
	Long: `hqcflow coordinates a classical derivative-free optimizer with pluggable
energy-evaluation backends to minimize a scalar objective over a parameter
vector, with persisted results, benchmarking and a job server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var level slog.Level
		switch logLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{Level: level}
		handler := slog.NewJSONHandler(os.Stdout, opts)
		logger = slog.New(handler)
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// buildRegistry assembles the backend registry used by run and serve.
// A remote backend is only registered when a URL is configured.
func buildRegistry(strict bool, remoteURL string) *backend.Registry {
	registry := backend.NewDefaultRegistry(strict)
	if remoteURL != "" {
		remote := backend.NewRemoteClient("remote_cloud", remoteURL, 30*time.Second)
		registry.Register(remote.Name(), remote)
	}
	return registry
}
