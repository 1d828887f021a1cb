// brush is a terminal brush for selecting a rectangle on a plotted series.
//
// Usage:
//
//	brush run [series]       - Brush a series in the terminal
//	brush serve              - Start SSH server for remote sessions
//	brush remote             - Start the websocket gesture server
//	brush history            - Browse or print saved selections
//	brush series             - List available series
//	brush config             - Print the default configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.brush/config.yaml, then ./configs/brush.yaml)
//	--db <path>         - Selection database (default: ~/.brush/selections.db)
//	--log-level <level> - debug, info, warn, error (overrides log.level)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-brush/internal/config"
	"github.com/vovakirdan/tui-brush/internal/storage"

	// Import series to register them
	_ "github.com/vovakirdan/tui-brush/internal/series"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brush",
	Short: "Brush - select a region of a chart in your terminal",
	Long: `Brush plots a series in the terminal and lets you draw and drag a
rectangular selection over it with the mouse or the keyboard.

Available commands:
  run      - Brush a series locally
  serve    - Start SSH server for remote sessions
  remote   - Start the websocket gesture server
  history  - Browse or print saved selections
  series   - Show all available series
  config   - Print the default configuration

Examples:
  brush run
  brush run sine --window
  brush serve --ssh :2222
  brush remote --addr :8787
  brush history --plain`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.brush/selections.db", "Path to selection database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// newLogger creates a leveled logger writing to w.
func newLogger(w io.Writer, level, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// newFileLogger logs to the configured file so the alt screen stays clean.
// The returned close function is never nil.
func newFileLogger(cfg config.LogConfig, prefix string) (*log.Logger, func()) {
	if cfg.File == "" {
		return log.New(io.Discard), func() {}
	}

	path := config.ExpandHome(cfg.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, cfg.Level, prefix), func() { f.Close() }
}

// openStore opens the selection database. Failures are reported and the
// caller continues without history.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open selection database: %v\n", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
