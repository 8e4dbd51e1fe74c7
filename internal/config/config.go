package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Playback PlaybackConfig `koanf:"playback"`

	// Simulated engine settings (used by the demo binary)
	Engine EngineConfig `koanf:"engine"`

	Logs LogsConfig `koanf:"logs"`
}

// PlaybackConfig holds dispatcher-facing settings.
type PlaybackConfig struct {
	// PiP overrides platform detection: "auto" (default), "on", "off".
	PiP string `koanf:"pip"`
	// RestoreSession replays persisted player settings at startup (default: true).
	RestoreSession *bool `koanf:"restore_session"`
}

// EngineConfig tunes the simulated media engine.
type EngineConfig struct {
	LatencyMs int      `koanf:"latency_ms"` // effect acknowledgment latency (default: 50)
	DurationS float64  `koanf:"duration_s"` // simulated media length in seconds (default: 600)
	FailKinds []string `koanf:"fail_kinds"` // effect kinds that fail, for exercising rollback
}

// LogsConfig holds logging configuration.
type LogsConfig struct {
	Level string `koanf:"level"` // "error", "warn", "info", "debug" (default: "info")
	JSON  bool   `koanf:"json"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/reel/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reel", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// GetEngineConfig returns the engine configuration with defaults applied.
func (c *Config) GetEngineConfig() EngineConfig {
	cfg := c.Engine

	if cfg.LatencyMs <= 0 {
		cfg.LatencyMs = 50
	}
	if cfg.DurationS <= 0 {
		cfg.DurationS = 600
	}

	return cfg
}

// Latency returns the engine acknowledgment latency as a duration.
func (e EngineConfig) Latency() time.Duration {
	return time.Duration(e.LatencyMs) * time.Millisecond
}

// GetLogsConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogsConfig() LogsConfig {
	cfg := c.Logs
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// ShouldRestoreSession reports whether persisted settings are replayed at
// startup. Defaults to true.
func (c *Config) ShouldRestoreSession() bool {
	if c.Playback.RestoreSession == nil {
		return true
	}
	return *c.Playback.RestoreSession
}
