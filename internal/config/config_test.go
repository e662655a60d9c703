package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Setenv registers restoration; the test itself wants them unset.
	t.Setenv("ARCADE_DB_PATH", "")
	t.Setenv("ARCADE_LOG_LEVEL", "")
	os.Unsetenv("ARCADE_DB_PATH")
	os.Unsetenv("ARCADE_LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if !strings.HasSuffix(cfg.DBPath, ".math-arcade.db") {
		t.Errorf("DBPath = %q, want default under home", cfg.DBPath)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")
	t.Setenv("ARCADE_DB_PATH", dbPath)
	t.Setenv("ARCADE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != dbPath {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, dbPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
