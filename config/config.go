// Package config loads server configuration from a TOML file with sensible
// defaults. Every field can also be overridden by a command-line flag; the
// flag wins when both are set.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all hearthd configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	// Path is the SQLite database file; ":memory:" runs without persistence.
	Path string `toml:"path"`
}

// SchedulerConfig controls the background period rollover.
type SchedulerConfig struct {
	Enabled bool `toml:"enabled"`
	// CheckIntervalMinutes is how often the rollover check fires.
	CheckIntervalMinutes int `toml:"check_interval_minutes"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
		Database: DatabaseConfig{
			Path: "hearth.db",
		},
		Scheduler: SchedulerConfig{
			Enabled:              true,
			CheckIntervalMinutes: 60,
		},
	}
}

// Load reads the config file at path, returning defaults when path is empty
// or the file doesn't exist.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: port %d out of range", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("invalid config: database path must not be empty")
	}
	if c.Scheduler.CheckIntervalMinutes < 1 {
		return fmt.Errorf("invalid config: check_interval_minutes must be positive")
	}
	return nil
}
