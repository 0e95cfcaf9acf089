// Package config loads and saves the gstbrowse configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"gstbrowse/internal/catalog"
)

// Config holds the application configuration
type Config struct {
	// ToolPath is the gst-inspect-1.0 binary; empty means look it up on PATH.
	ToolPath string `yaml:"tool_path"`

	// DuplicatePolicy resolves duplicate feature names: "last-wins" (default)
	// or "first-wins".
	DuplicatePolicy string `yaml:"duplicate_policy"`

	// TruncateDescription restores the historical behavior of keeping only
	// the third colon field of a listing line as the description.
	TruncateDescription bool `yaml:"truncate_description"`

	// DefaultFilter is the kind filter selected at startup:
	// all, plugins, elements or typefinders.
	DefaultFilter string `yaml:"default_filter"`

	// TimeoutSeconds bounds each tool invocation; 0 means no timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// configFileName is the name of the config file
const configFileName = "config.yaml"

// Default returns the default configuration. Elements is the default
// filter; it is what most users want to examine first.
func Default() *Config {
	return &Config{
		ToolPath:        "",
		DuplicatePolicy: "last-wins",
		DefaultFilter:   "elements",
		TimeoutSeconds:  0,
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "gstbrowse", configFileName)
}

// Load loads the configuration, returning defaults when the file does
// not exist.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves the configuration to file
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo saves the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CatalogOptions maps the config onto parse options.
func (c *Config) CatalogOptions() (catalog.Options, error) {
	policy, err := catalog.ParseDuplicatePolicy(c.DuplicatePolicy)
	if err != nil {
		return catalog.Options{}, err
	}
	return catalog.Options{
		DuplicatePolicy:     policy,
		TruncateDescription: c.TruncateDescription,
	}, nil
}

// FilterKind maps the configured default filter onto a FilterKind.
func (c *Config) FilterKind() (catalog.FilterKind, error) {
	return catalog.ParseFilterKind(c.DefaultFilter)
}

// Timeout returns the per-invocation timeout, 0 when unbounded.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
