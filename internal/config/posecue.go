// Package config loads the posecue configuration from an optional yaml
// file merged over compiled-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir string        `mapstructure:"data_dir" yaml:"data_dir"`
	Timer   TimerConfig   `mapstructure:"timer" yaml:"timer"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Audio   AudioConfig   `mapstructure:"audio" yaml:"audio"`
}

type TimerConfig struct {
	IntervalMS int `mapstructure:"interval_ms" yaml:"interval_ms"`
}

type SessionConfig struct {
	AutoAdvance bool `mapstructure:"auto_advance" yaml:"auto_advance"`
}

type AudioConfig struct {
	Player string  `mapstructure:"player" yaml:"player"` // player binary, empty = autodetect
	Volume float64 `mapstructure:"volume" yaml:"volume"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return os.ExpandEnv("$HOME/.config/posecue.yaml")
}

func defaults() map[string]any {
	return map[string]any{
		"data_dir":             "~/.local/share/posecue",
		"timer.interval_ms":    200,
		"session.auto_advance": true,
		"audio.player":         "",
		"audio.volume":         0.9,
	}
}

// Load reads the config file at path, or the defaults when the file
// does not exist. A file that exists but cannot be parsed is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults() {
		v.SetDefault(key, val)
	}

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Timer.IntervalMS <= 0 || c.Timer.IntervalMS > 1000 {
		return fmt.Errorf("timer.interval_ms must be in 1..1000, got %d", c.Timer.IntervalMS)
	}
	if c.Audio.Volume <= 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be in (0,1], got %g", c.Audio.Volume)
	}
	return nil
}

// Interval returns the timer sampling interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Timer.IntervalMS) * time.Millisecond
}

// SoundsDir returns the soundbank's base storage directory.
func (c *Config) SoundsDir() string {
	return filepath.Join(c.DataDir, "sounds")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
