package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/overlaydeck/overlaydeck/internal/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is read from OVERLAY_* environment variables. When ConfigFile is
// set, keys present in that YAML file override the environment.
type Config struct {
	SnapEnabled     bool    `envconfig:"SNAP_ENABLED" default:"true" yaml:"snapEnabled"`
	ShowGuides      bool    `envconfig:"SHOW_GUIDES" default:"true" yaml:"showGuides"`
	SnapThreshold   float64 `envconfig:"SNAP_THRESHOLD" default:"6" yaml:"snapThreshold"`
	MinSize         float64 `envconfig:"MIN_SIZE" default:"24" yaml:"minSize"`
	MinZoom         float64 `envconfig:"MIN_ZOOM" default:"0.1" yaml:"minZoom"`
	MaxZoom         float64 `envconfig:"MAX_ZOOM" default:"8" yaml:"maxZoom"`
	ZoomSensitivity float64 `envconfig:"ZOOM_SENSITIVITY" default:"0.0015" yaml:"zoomSensitivity"`
	BatchMoves      bool    `envconfig:"BATCH_MOVES" default:"true" yaml:"batchMoves"`
	HandleSize      float64 `envconfig:"HANDLE_SIZE" default:"10" yaml:"handleSize"`
	LogLevel        string  `envconfig:"LOG_LEVEL" default:"info" yaml:"logLevel"`
	WindowWidth     int     `envconfig:"WINDOW_WIDTH" default:"1280" yaml:"windowWidth"`
	WindowHeight    int     `envconfig:"WINDOW_HEIGHT" default:"720" yaml:"windowHeight"`
	LayoutFile      string  `envconfig:"LAYOUT_FILE" yaml:"layoutFile"`
	ConfigFile      string  `envconfig:"CONFIG_FILE" yaml:"-"`
}

const envPrefix = "OVERLAY"

func Load() (*Config, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	cfg := *env
	if cfg.ConfigFile != "" {
		if err := cfg.applyFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnv reads only the environment. It is the base a Watcher lays the
// config file over, so keys removed from the file fall back to it.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// applyFile overlays the keys present in a YAML file onto c.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.SnapThreshold < 0:
		return fmt.Errorf("%w: snap threshold %v is negative", ErrInvalidConfig, c.SnapThreshold)
	case c.MinSize <= 0:
		return fmt.Errorf("%w: min size must be positive", ErrInvalidConfig)
	case c.MinZoom <= 0 || c.MaxZoom < c.MinZoom:
		return fmt.Errorf("%w: zoom range [%v, %v]", ErrInvalidConfig, c.MinZoom, c.MaxZoom)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.WindowWidth, c.WindowHeight)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// Settings converts the editor knobs to engine settings.
func (c *Config) Settings() engine.Settings {
	return engine.Settings{
		SnapEnabled:     c.SnapEnabled,
		ShowGuides:      c.ShowGuides,
		SnapThreshold:   c.SnapThreshold,
		MinSize:         c.MinSize,
		MinZoom:         c.MinZoom,
		MaxZoom:         c.MaxZoom,
		ZoomSensitivity: c.ZoomSensitivity,
		HandleSize:      c.HandleSize,
		BatchMoves:      c.BatchMoves,
	}
}
