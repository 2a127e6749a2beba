// Package pgstore keeps the recipe slot in a Postgres table.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/idilsaglam/recipes/internal/store"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/recipes?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Slot persists the payload as one row of the slots table.
type Slot struct {
	db  *sql.DB
	key string
}

// New connects to dsn, retrying the initial ping with bounded backoff, and
// ensures the slots table exists.
func New(ctx context.Context, dsn, key string, bo backoff.BackOff) (*Slot, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	if key == "" {
		key = store.DefaultKey
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ping := func() error { return db.PingContext(ctx) }
	if err := backoff.Retry(ping, backoff.WithContext(bo, ctx)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		payload BYTEA NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &Slot{db: db, key: key}, nil
}

func (s *Slot) Driver() store.Driver { return store.DriverPostgres }

func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE key = $1`, s.key).Scan(&payload)
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
		`INSERT INTO slots(key, payload) VALUES($1, $2) ON CONFLICT(key) DO UPDATE SET payload = EXCLUDED.payload`,
		s.key, payload); err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

func (s *Slot) Close() error { return s.db.Close() }
