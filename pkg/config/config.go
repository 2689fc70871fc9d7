// Package config loads the user configuration file. A missing file
// yields the defaults; a malformed file is an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kraitsura/mindgrove/pkg/layout"
)

// Config is the user-tunable configuration.
type Config struct {
	// DebounceMS is the quiet period before keystroke-level edits are
	// coalesced into one history entry.
	DebounceMS int `yaml:"debounce_ms"`
	// Theme selects the color palette by name.
	Theme string `yaml:"theme"`
	// Layout overrides the layout constants.
	Layout layout.Config `yaml:"layout"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		DebounceMS: 800,
		Theme:      "dracula",
		Layout:     layout.DefaultConfig(),
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mindgrove", "config.yaml")
}

// Load reads the config at path, filling unset fields with defaults.
// A missing file (or empty path) returns the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = Default().DebounceMS
	}
	return cfg, nil
}

// DebounceWindow returns the debounce period as a duration.
func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
