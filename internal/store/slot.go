// Package store holds the persisted slot: one key holding the whole recipe
// collection as a single serialized blob. Backends live in subpackages.
package store

import (
	"context"
	"errors"
)

// Driver identifies a slot backend.
type Driver string

const (
	DriverFile     Driver = "file"     // JSON file on disk (default)
	DriverMemory   Driver = "memory"   // in-process (tests, --ephemeral)
	DriverSQLite   Driver = "sqlite"   // single table in a SQLite database
	DriverPostgres Driver = "postgres" // single table in Postgres
	DriverS3       Driver = "s3"       // one object in an S3 / MinIO bucket
)

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "recipes"

var (
	// ErrNotFound is returned by Read when the slot has never been written.
	ErrNotFound = errors.New("slot not found")
	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown slot driver")
)

// Slot is a single key-value location. Write overwrites the whole payload.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
	Driver() Driver
	Close() error
}
