package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the brush configuration.
// Search order: customPath -> ~/.brush/config.yaml -> ./configs/brush.yaml -> embedded default.
// Files are layered over the defaults, so a file only needs the keys it changes.
func Load(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "brush.yaml")} {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBrushYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads a config file, ignoring files that are missing or invalid.
func tryLoad(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brush", filename)
}

// UserDir returns ~/.brush, or ".brush" when the home directory is unknown.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".brush"
	}
	return filepath.Join(home, ".brush")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
