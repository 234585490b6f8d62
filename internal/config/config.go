// Package config handles global Canopy configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global Canopy configuration.
type Config struct {
	// DefaultStore is the name of the default store (from Stores map).
	DefaultStore string `toml:"default_store"`

	// Stores is a map of store names to database paths.
	Stores map[string]string `toml:"stores"`

	// Rollup holds defaults for the rollup batch processor.
	Rollup RollupConfig `toml:"rollup"`
}

// RollupConfig holds tunables for long-running rollup batches.
type RollupConfig struct {
	// PageSize is the number of posts fetched per query page.
	PageSize int `toml:"page_size"`

	// SleepMs is the pause between pages, in milliseconds. The pause
	// throttles sustained write load against the database.
	SleepMs int `toml:"sleep_ms"`
}

// GetStorePath returns the database path for a named store.
// If name is empty, returns the default store path.
func (c *Config) GetStorePath(name string) (string, error) {
	if name == "" {
		name = c.DefaultStore
	}

	if c.Stores != nil {
		if path, ok := c.Stores[name]; ok {
			return path, nil
		}
	}

	if name == "" {
		return "", fmt.Errorf("no default store configured")
	}
	return "", fmt.Errorf("store '%s' not found in config", name)
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/canopy/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "canopy", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "canopy", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}
