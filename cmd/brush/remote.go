package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brush/internal/remote"
)

var (
	flagRemoteAddr string
	flagRemotePath string
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Start the websocket gesture server",
	Long: `Start an HTTP server that accepts websocket clients streaming pointer
or touch events. Every connection brushes its own selection on a stage of
remote.stage_width by remote.stage_height units.

Client frames:
  {"t":"down","kind":"pointer","x":20,"y":15,"id":1}
  {"t":"move", ...}  {"t":"up", ...}  {"t":"leave"}  {"t":"reset"}  {"t":"state"}

Server frames:
  {"t":"state","state":{...}}   {"t":"move","move":"move","coords":{...}}
  {"t":"end","state":{...},"saved":"<id>"}   {"t":"error","error":"..."}

Examples:
  brush remote
  brush remote --addr 127.0.0.1:9000 --path /brush`,
	RunE: runRemote,
}

func init() {
	remoteCmd.Flags().StringVar(&flagRemoteAddr, "addr", "", "Listen address (host:port)")
	remoteCmd.Flags().StringVar(&flagRemotePath, "path", "", "Websocket path")
}

func runRemote(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagRemoteAddr != "" {
		cfg.Remote.Address = flagRemoteAddr
	}
	if flagRemotePath != "" {
		cfg.Remote.Path = flagRemotePath
	}

	logger := newLogger(os.Stderr, cfg.Log.Level, "brush-remote")

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := remote.NewServer(cfg, store, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Gesture server on ws://%s%s\n", cfg.Remote.Address, cfg.Remote.Path)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
