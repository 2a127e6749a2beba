package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/recipes/internal/store"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Slot persists the payload as one row of the slots table.
type Slot struct {
	db   *sql.DB
	key  string
	path string
}

// New opens (or creates) the database at path and ensures the slots table exists.
func New(ctx context.Context, path, key string) (*Slot, error) {
	if path == "" {
		path = "recipes.db"
	}
	if key == "" {
		key = store.DefaultKey
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &Slot{db: db, key: key, path: path}, nil
}

func (s *Slot) Driver() store.Driver { return store.DriverSQLite }

// Path returns the configured database path.
func (s *Slot) Path() string { return s.path }

func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE key = ?`, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return payload, nil
}

func (s *Slot) Write(ctx context.Context, payload []byte) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO slots(key, payload) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		s.key, payload); err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

func (s *Slot) Close() error { return s.db.Close() }
