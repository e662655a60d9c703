package kvstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

// SQLiteStore is the on-device Store implementation, a single kv table
// in a SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (creating if missing) the SQLite database at path and
// ensures the kv schema exists.
func Open(path string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	if err := configureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv schema: %w", err)
	}

	return &SQLiteStore{db: db, log: log}, nil
}

func configureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// WAL keeps concurrent readers cheap on a local device.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the value for key, or ok=false if absent or unreadable.
func (s *SQLiteStore) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		s.log.Debug("kv read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

// Set stores value under key. Failures are logged and swallowed.
func (s *SQLiteStore) Set(key, value string) {
	query := "INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	if _, err := s.db.Exec(query, key, value); err != nil {
		s.log.Debug("kv write failed", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes key. Failures are logged and swallowed.
func (s *SQLiteStore) Remove(key string) {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		s.log.Debug("kv remove failed", zap.String("key", key), zap.Error(err))
	}
}

// Keys enumerates all stored keys.
func (s *SQLiteStore) Keys() []string {
	rows, err := s.db.Query("SELECT key FROM kv")
	if err != nil {
		s.log.Debug("kv key enumeration failed", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			s.log.Debug("kv key scan failed", zap.Error(err))
			return keys
		}
		keys = append(keys, k)
	}
	return keys
}
