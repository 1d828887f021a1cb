package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brush/internal/platform/tui"
	"github.com/vovakirdan/tui-brush/internal/registry"
)

var (
	flagWindow bool
	flagNoDrag bool
	flagSeed   int64
)

var runCmd = &cobra.Command{
	Use:   "run [series]",
	Short: "Brush a series in the terminal",
	Long: `Plot a series and brush it with the mouse.

Mouse:
  Drag the selection   - Move it (clamped to the stage)
  Drag elsewhere       - Draw a new selection

Keys:
  Arrows/hjkl  - Nudge the selection
  C            - Clear the selection
  S            - Save a screenshot to ~/.brush/screenshots
  Q/Ctrl+C     - Quit

Finished selections are saved to the selection database.

Examples:
  brush run
  brush run sine
  brush run walk --seed 42 --window`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagWindow, "window", false, "Keep tracking drags that leave the stage")
	runCmd.Flags().BoolVar(&flagNoDrag, "no-drag", false, "Disable dragging the selection")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Series seed (0 = config value)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Stage.Series = args[0]
	}
	if cmd.Flags().Changed("window") {
		cfg.Brush.UseWindowMoveEvents = flagWindow
	}
	if cmd.Flags().Changed("no-drag") {
		cfg.Brush.DisableDraggingSelection = flagNoDrag
	}
	if flagSeed != 0 {
		cfg.Stage.Seed = flagSeed
	}

	if !registry.Exists(cfg.Stage.Series) {
		fmt.Fprintln(os.Stderr, "Run 'brush series' to see available series.")
		return fmt.Errorf("unknown series %q", cfg.Stage.Series)
	}
	series, err := registry.Create(cfg.Stage.Series)
	if err != nil {
		return err
	}

	logger, closeLog := newFileLogger(cfg.Log, "brush")
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	logger.Info("starting", "series", series.ID(), "width", width, "height", height)

	return tui.Run(series, store, cfg, tui.Env{
		Session: "local",
		Width:   width,
		Height:  height,
		Logger:  logger,
	})
}
