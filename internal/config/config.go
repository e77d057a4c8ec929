// Package config provides configuration loading for the CLI layer. The
// library itself reads nothing; only presentation defaults live here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the resolved configuration.
type Config struct {
	// Format is the default output format: auto, json, plain, styled.
	Format string `yaml:"format"`

	// Layout overrides the datetime display layout (Go reference layout).
	// Date-only and time-only results keep their canonical layouts.
	Layout string `yaml:"layout"`

	// Color controls styling: auto, always, never.
	Color string `yaml:"color"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]string `yaml:"-"`
}

// Source indicates where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Format:  "auto",
		Color:   "auto",
		Sources: make(map[string]string),
	}
}

// Path returns the config file location: $WHENCE_CONFIG if set, else
// $XDG_CONFIG_HOME/whence/config.yml, else ~/.config/whence/config.yml.
func Path() string {
	if p := os.Getenv("WHENCE_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "whence", "config.yml")
}

// Load loads configuration with precedence: defaults < file < env.
// A missing file is not an error; a malformed one is.
func Load() (*Config, error) {
	cfg := Default()

	if path := Path(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, err
		}
	}
	loadFromEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is from trusted config locations
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if file.Format != "" {
		cfg.Format = file.Format
		cfg.Sources["format"] = string(SourceFile)
	}
	if file.Layout != "" {
		cfg.Layout = file.Layout
		cfg.Sources["layout"] = string(SourceFile)
	}
	if file.Color != "" {
		cfg.Color = file.Color
		cfg.Sources["color"] = string(SourceFile)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("WHENCE_FORMAT"); v != "" {
		cfg.Format = v
		cfg.Sources["format"] = string(SourceEnv)
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = "never"
		cfg.Sources["color"] = string(SourceEnv)
	}
}

func (c *Config) validate() error {
	switch c.Format {
	case "auto", "json", "plain", "styled":
	default:
		return fmt.Errorf("invalid format %q: want auto, json, plain, or styled", c.Format)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q: want auto, always, or never", c.Color)
	}
	return nil
}
