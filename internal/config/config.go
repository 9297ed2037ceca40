// Package config loads the settings of a hexsim run from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hexecon/internal/world"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Config holds everything a run needs.
type Config struct {
	World    world.GenConfig `yaml:"world"`
	Turns    int             `yaml:"turns"`
	Interval time.Duration   `yaml:"interval"` // wall time between turns, 0 = as fast as possible
	TileSize float64         `yaml:"tile_size"`
	Journal  string          `yaml:"journal"` // SQLite path, empty = no journal
	LogLevel string          `yaml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		World:    world.DefaultGenConfig(),
		Turns:    100,
		TileSize: 64,
		Journal:  "",
		LogLevel: "info",
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Turns < 0 {
		return fmt.Errorf("%w: turns %d", ErrInvalid, c.Turns)
	}
	if c.Interval < 0 {
		return fmt.Errorf("%w: interval %s", ErrInvalid, c.Interval)
	}
	if c.TileSize < 1 {
		return fmt.Errorf("%w: tile size %v", ErrInvalid, c.TileSize)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}
