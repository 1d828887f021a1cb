// Package config provides YAML-based configuration loading for the brush
// stage, its front ends, and logging.
package config

import (
	"fmt"
	"time"
)

// Config contains all configuration for the brush tool.
type Config struct {
	Stage  StageConfig  `yaml:"stage"`
	Brush  BrushConfig  `yaml:"brush"`
	Style  StyleConfig  `yaml:"style"`
	Server ServerConfig `yaml:"server"`
	Remote RemoteConfig `yaml:"remote"`
	Log    LogConfig    `yaml:"log"`
}

// StageConfig defines the chart drawn behind the brush.
type StageConfig struct {
	Series  string `yaml:"series"`  // registry ID of the plotted series
	Samples int    `yaml:"samples"` // number of values sampled from the series
	Seed    int64  `yaml:"seed"`    // 0 = time based
	Padding int    `yaml:"padding"` // empty cells around the stage frame
}

// BrushConfig defines the initial selection and pointer wiring.
type BrushConfig struct {
	Initial                  ExtentFractions `yaml:"initial"`
	DisableDraggingSelection bool            `yaml:"disable_dragging_selection"`
	UseWindowMoveEvents      bool            `yaml:"use_window_move_events"`
	KeyboardStep             float64         `yaml:"keyboard_step"` // stage units per arrow key press
}

// ExtentFractions is an extent expressed as fractions (0..1) of the stage.
type ExtentFractions struct {
	X0 float64 `yaml:"x0"`
	X1 float64 `yaml:"x1"`
	Y0 float64 `yaml:"y0"`
	Y1 float64 `yaml:"y1"`
}

// StyleConfig holds lipgloss color strings. Presentation only.
type StyleConfig struct {
	SelectionFg   string `yaml:"selection_fg"`
	SelectionBg   string `yaml:"selection_bg"`
	OverlayBorder string `yaml:"overlay_border"`
	ChartFg       string `yaml:"chart_fg"`
	AxisFg        string `yaml:"axis_fg"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RemoteConfig configures the websocket gesture server.
type RemoteConfig struct {
	Address     string  `yaml:"address"`
	Path        string  `yaml:"path"`
	StageWidth  float64 `yaml:"stage_width"`
	StageHeight float64 `yaml:"stage_height"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // TUI log file; empty disables file logging
}

// Validate checks value ranges and returns the first problem found.
func (c Config) Validate() error {
	if c.Stage.Samples <= 0 {
		return fmt.Errorf("config: stage.samples must be positive, got %d", c.Stage.Samples)
	}
	if c.Stage.Padding < 0 {
		return fmt.Errorf("config: stage.padding must not be negative, got %d", c.Stage.Padding)
	}
	if err := c.Brush.Initial.validate(); err != nil {
		return err
	}
	if c.Brush.KeyboardStep <= 0 {
		return fmt.Errorf("config: brush.keyboard_step must be positive, got %g", c.Brush.KeyboardStep)
	}
	if c.Remote.StageWidth <= 0 || c.Remote.StageHeight <= 0 {
		return fmt.Errorf("config: remote stage size must be positive, got %gx%g",
			c.Remote.StageWidth, c.Remote.StageHeight)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

func (f ExtentFractions) validate() error {
	for name, v := range map[string]float64{"x0": f.X0, "x1": f.X1, "y0": f.Y0, "y1": f.Y1} {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: brush.initial.%s must be within [0, 1], got %g", name, v)
		}
	}
	return nil
}
