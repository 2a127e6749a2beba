package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/recipes/internal/store"
)

func TestSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "recipes.db")
	s, err := New(ctx, path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	assert.Equal(t, store.DriverSQLite, s.Driver())
	assert.Equal(t, path, s.Path())

	_, err = s.Read(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Write(ctx, []byte(`[{"id":1}]`)))
	require.NoError(t, s.Write(ctx, []byte(`[]`)))
	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestSlotsAreKeyed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recipes.db")
	a, err := New(ctx, path, "a")
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	b, err := New(ctx, path, "b")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, a.Write(ctx, []byte("A")))
	_, err = b.Read(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSlotPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recipes.db")
	s, err := New(ctx, path, "")
	require.NoError(t, err)
	require.NoError(t, s.Write(ctx, []byte("payload")))
	require.NoError(t, s.Close())

	s, err = New(ctx, path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}
