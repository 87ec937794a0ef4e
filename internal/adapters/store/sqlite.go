// Package store provides key-value store adapters implementing the
// ports.KeyValueStore contract.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mnstudio/quote-studio/internal/ports"
)

// SQLite is a durable device-local key-value store backed by a single
// SQLite file. It survives process restarts but is never shared across
// devices, which is exactly the persistence contract the interaction
// sets and the current identity need.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database file at path.
// Missing parent directories are created.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}

	// The modernc driver is happiest with a single connection, and one
	// writer is all this store ever has.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging sqlite store: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv(
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	if err != nil {
		return nil, fmt.Errorf("migrating sqlite store: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Get retrieves the value stored under key.
func (s *SQLite) Get(ctx context.Context, key ports.StoreKey) (string, bool, error) {
	var value string

	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, string(key),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}

	return value, true, nil
}

// Set stores value under key, replacing any previous value.
// Single-statement upsert, so the single-key atomicity the callers rely
// on comes from SQLite itself.
func (s *SQLite) Set(ctx context.Context, key ports.StoreKey, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		string(key), value,
	)
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}

	return nil
}

// Delete removes the value stored under key.
func (s *SQLite) Delete(ctx context.Context, key ports.StoreKey) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, string(key))
	if err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}

	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Name implements ports.HealthChecker.
func (s *SQLite) Name() string {
	return "sqlite-store"
}

// Check implements ports.HealthChecker.
func (s *SQLite) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
