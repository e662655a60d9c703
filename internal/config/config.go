package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// DBPath is the device store location. Empty selects the default
	// under the user's home directory.
	DBPath string `env:"ARCADE_DB_PATH"`
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `env:"ARCADE_LOG_LEVEL" envDefault:"warn"`
}

// Load reads configuration from environment variables, honoring a
// local .env file when present.
func Load() (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}
	return cfg, nil
}

// DefaultDBPath returns the default device store location.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home dir: %w", err)
	}
	return filepath.Join(home, ".math-arcade.db"), nil
}
