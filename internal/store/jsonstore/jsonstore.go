package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/recipes/internal/store"
)

// JSON file slot. Single file, human-readable, portable.
// No locking; a single local user owns the file.

// Slot stores the payload in <dir>/<key>.json.
type Slot struct {
	path string
}

// New returns a file slot rooted at dir, creating dir if needed.
// An empty dir means the working directory.
func New(dir, key string) (*Slot, error) {
	if key == "" {
		key = store.DefaultKey
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Slot{path: filepath.Join(dir, key+".json")}, nil
}

// Path returns the file backing the slot.
func (s *Slot) Path() string { return s.path }

func (s *Slot) Driver() store.Driver { return store.DriverFile }

func (s *Slot) Read(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Write replaces the file atomically through a temp file in the same directory.
func (s *Slot) Write(_ context.Context, payload []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Slot) Close() error { return nil }
