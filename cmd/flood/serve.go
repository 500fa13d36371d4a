package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flood/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Flood SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the player picker, so
players on different connections never share an active profile. All
connections share the same progress database (and --remote backend).

Host key handling:
  - If --host-key or server.host_key_path is set, uses that key file
  - Otherwise, auto-generates a key at ~/.flood/host_key

Examples:
  flood serve                           # Listen on the configured address
  flood serve --ssh :2222               # Listen on port 2222
  flood serve --host-key ./my_host_key  # Use specific host key
  flood serve --db ./progress.db        # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp(modeServer)
	if err != nil {
		return err
	}
	defer a.Close()

	serverCfg := a.cfg.Server
	if flagSSHAddr != "" {
		serverCfg.SSHAddr = flagSSHAddr
	}
	if flagHostKey != "" {
		serverCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		serverCfg.IdleTimeout = flagIdleTimeout
	}

	styles := tui.StylesFromPalette(a.cfg.Palette)
	server, err := tui.NewSSHServer(tui.SSHConfigFrom(serverCfg, flagFPS), a.store, a.local, styles, a.logger.WithPrefix("flood-ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Flood SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i+1:]
	}
	return addr
}
