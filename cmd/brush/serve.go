package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brush/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the brush SSH server",
	Long: `Start an SSH server that gives every connection its own brush stage.

Selections from all sessions go to the same database, tagged with the
SSH user and a session ID.

Host key handling:
  - If --host-key (or server.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.brush/host_key

Examples:
  brush serve                           # Listen on server.address
  brush serve --ssh :2222               # Listen on port 2222
  brush serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (e.g. 30m)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}

	logger := newLogger(os.Stderr, cfg.Log.Level, "brush-ssh")

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting brush SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
