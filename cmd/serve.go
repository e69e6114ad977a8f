package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/hqcflow/internal/governance"
	"github.com/cwbudde/hqcflow/internal/server"
	"github.com/cwbudde/hqcflow/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveDataDir   string
	serveStrict    bool
	serveRemoteURL string
	serveNoGate    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the workflow HTTP server",
	Long: `Serves the workflow API: create and track executions, stream progress
over SSE, list backends and expose Prometheus metrics. Workflow creation is
gated through the governance access check unless disabled.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "./data", "Base directory for result storage")
	serveCmd.Flags().BoolVar(&serveStrict, "strict-backend", false, "Fail on unknown backend instead of falling back to the local simulator")
	serveCmd.Flags().StringVar(&serveRemoteURL, "remote-url", "", "Base URL of a remote evaluation service")
	serveCmd.Flags().BoolVar(&serveNoGate, "no-gate", false, "Disable the governance access check")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	registry := buildRegistry(serveStrict, serveRemoteURL)

	resultStore, err := store.NewFSStore(serveDataDir)
	if err != nil {
		return fmt.Errorf("failed to create result store: %w", err)
	}

	var gate governance.Gate
	if !serveNoGate {
		gate = governance.NewManager()
	}

	srv := server.NewServer(serveAddr, registry, gate, resultStore)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
