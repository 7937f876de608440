// Package sqlite provides the durable KeyValue implementation backed by a
// SQLite database file. Each collection is stored as a single serialized
// document in the collections table, so a Save replaces the whole collection
// in one statement.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/campus-booking/internal/persistence"
	_ "modernc.org/sqlite"
)

// Store implements persistence.KeyValue on top of database/sql.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// Single writer keeps the write-through semantics simple and avoids
	// SQLITE_BUSY under the pure-Go driver.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS collections (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}
	return nil
}

// Save upserts the serialized collection for key.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO collections (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("sqlite: failed to save %s: %w", key, err)
	}
	return nil
}

// Load returns the serialized collection stored for key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM collections WHERE key = ?`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: failed to load %s: %w", key, err)
	}
	return value, nil
}
