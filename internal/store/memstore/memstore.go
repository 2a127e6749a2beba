package memstore

import (
	"context"
	"sync"

	"github.com/idilsaglam/recipes/internal/store"
)

// Slot keeps the payload in memory.
type Slot struct {
	mu      sync.Mutex
	payload []byte
	set     bool
	writes  int
}

func New() *Slot { return &Slot{} }

// NewWith returns a slot pre-filled with payload.
func NewWith(payload []byte) *Slot {
	s := New()
	s.payload = append([]byte(nil), payload...)
	s.set = true
	return s
}

func (s *Slot) Driver() store.Driver { return store.DriverMemory }

func (s *Slot) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), s.payload...), nil
}

func (s *Slot) Write(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = append([]byte(nil), payload...)
	s.set = true
	s.writes++
	return nil
}

func (s *Slot) Close() error { return nil }

// WriteCount reports how many times Write succeeded.
func (s *Slot) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
