package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flood/internal/remote"
)

var flagBackendAddr string

var backendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Start the progress backend",
	Long: `Start a websocket server that shares profiles and progress between
machines. Clients point --remote (or remote.url) at its /ws endpoint and
fall back to their local database while it is unreachable.

The backend stores everything in its own local database (--db).

Examples:
  flood backend
  flood backend --addr :9000 --db ./shared.db

Clients can then use:
  flood menu --remote ws://server:8787/ws`,
	Args: cobra.NoArgs,
	RunE: runBackend,
}

func init() {
	backendCmd.Flags().StringVar(&flagBackendAddr, "addr", "", "Listen address (default from config)")
}

func runBackend(_ *cobra.Command, _ []string) error {
	a, err := newApp(modeBackend)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Server.BackendAddr
	if flagBackendAddr != "" {
		addr = flagBackendAddr
	}

	fmt.Printf("Starting Flood progress backend on %s\n", addr)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return remote.NewServer(a.local, a.logger.WithPrefix("flood-backend")).ListenAndServe(ctx, addr)
}
