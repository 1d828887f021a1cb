package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/brush.yaml
var defaultBrushYAML []byte

// DefaultConfig returns the hardcoded configuration. It matches the
// embedded defaults/brush.yaml.
func DefaultConfig() Config {
	return Config{
		Stage: StageConfig{
			Series:  "walk",
			Samples: 256,
			Seed:    0,
			Padding: 1,
		},
		Brush: BrushConfig{
			Initial: ExtentFractions{
				X0: 0.25,
				X1: 0.5,
				Y0: 0.2,
				Y1: 0.8,
			},
			DisableDraggingSelection: false,
			UseWindowMoveEvents:      false,
			KeyboardStep:             1,
		},
		Style: StyleConfig{
			SelectionFg:   "0",
			SelectionBg:   "6",
			OverlayBorder: "11",
			ChartFg:       "4",
			AxisFg:        "245",
		},
		Server: ServerConfig{
			Address:     ":23235",
			HostKey:     "",
			IdleTimeout: 30 * time.Minute,
		},
		Remote: RemoteConfig{
			Address:     ":8787",
			Path:        "/ws",
			StageWidth:  1000,
			StageHeight: 500,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.brush/brush.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBrushYAML
}
