package recipes

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/recipes/internal/metrics"
	"github.com/idilsaglam/recipes/internal/model"
	"github.com/idilsaglam/recipes/internal/store"
	"github.com/idilsaglam/recipes/internal/store/memstore"
)

// seqIDs mints 1, 2, 3, ...
type seqIDs struct{ n int }

func (g *seqIDs) Next() model.ID {
	g.n++
	return model.ID(strconv.Itoa(g.n))
}

// brokenSlot fails every read and/or write.
type brokenSlot struct {
	readErr, writeErr error
}

func (b brokenSlot) Read(context.Context) ([]byte, error) { return nil, b.readErr }
func (b brokenSlot) Write(context.Context, []byte) error  { return b.writeErr }
func (b brokenSlot) Driver() store.Driver                 { return "broken" }
func (b brokenSlot) Close() error                         { return nil }

func fields(title, ingredients, instructions string) model.Fields {
	return model.Fields{Title: title, Ingredients: ingredients, Instructions: instructions}
}

func newLoaded(t *testing.T, slot store.Slot) *Store {
	t.Helper()
	s := New(slot, WithIDs(&seqIDs{}))
	s.Load(context.Background())
	return s
}

func seed(t *testing.T, s *Store, titles ...string) []model.Recipe {
	t.Helper()
	var out []model.Recipe
	for _, title := range titles {
		r, err := s.Save(context.Background(), model.NewDraft{Fields: fields(title, title+" stuff", "cook")})
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func TestLoadFallbacks(t *testing.T) {
	tests := []struct {
		name string
		slot store.Slot
	}{
		{name: "missing", slot: memstore.New()},
		{name: "corrupt", slot: memstore.NewWith([]byte(`{not json`))},
		{name: "object not array", slot: memstore.NewWith([]byte(`{"id":1}`))},
		{name: "wrong field types", slot: memstore.NewWith([]byte(`[{"id":1,"title":7}]`))},
		{name: "null", slot: memstore.NewWith([]byte(`null`))},
		{name: "unreadable", slot: brokenSlot{readErr: errors.New("disk gone")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newLoaded(t, tt.slot)
			assert.Zero(t, s.Len())
			assert.NotNil(t, s.All())
			assert.Empty(t, slices.Collect(s.Search("")))
		})
	}
}

func TestLoadReadsOriginalLayout(t *testing.T) {
	payload := `[
		{"id": 1700000000001, "title": "Pasta Bake", "ingredients": "pasta, cheese", "instructions": "bake"},
		{"id": "1700000000002", "title": "Green Salad", "ingredients": "lettuce", "instructions": "toss"}
	]`
	s := newLoaded(t, memstore.NewWith([]byte(payload)))
	require.Equal(t, 2, s.Len())
	all := s.All()
	assert.Equal(t, model.ID("1700000000001"), all[0].ID)
	assert.Equal(t, model.ID("1700000000002"), all[1].ID)
	assert.Equal(t, "Green Salad", all[1].Title)
}

func TestLoadRepairsIDs(t *testing.T) {
	payload := `[
		{"title": "No id", "ingredients": "a", "instructions": "b"},
		{"id": 1, "title": "First", "ingredients": "a", "instructions": "b"},
		{"id": 1, "title": "Dup", "ingredients": "a", "instructions": "b"}
	]`
	s := newLoaded(t, memstore.NewWith([]byte(payload)))
	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "No id", all[0].Title)
	assert.Equal(t, model.ID("2"), all[0].ID, "minted id must avoid ids already in the payload")
	assert.Equal(t, "First", all[1].Title)
}

func TestPersistRoundTrip(t *testing.T) {
	slot := memstore.New()
	s := newLoaded(t, slot)
	seed(t, s, "Pasta Bake", "Green Salad", "Soup")
	_, err := s.Save(context.Background(), model.EditDraft{ID: "2", Fields: fields("Caesar Salad", "romaine", "toss")})
	require.NoError(t, err)

	reloaded := newLoaded(t, slot)
	assert.Equal(t, s.All(), reloaded.All())
}

func TestSaveNewAppends(t *testing.T) {
	s := newLoaded(t, memstore.New())
	before := seed(t, s, "A", "B")

	r, err := s.Save(context.Background(), model.NewDraft{Fields: fields("C", "c", "c")})
	require.NoError(t, err)

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, before, all[:2])
	assert.Equal(t, r, all[2])
	for _, prev := range before {
		assert.NotEqual(t, prev.ID, r.ID)
	}
}

func TestSaveEditReplacesInPlace(t *testing.T) {
	s := newLoaded(t, memstore.New())
	before := seed(t, s, "A", "B", "C")

	r, err := s.Save(context.Background(), model.EditDraft{ID: before[1].ID, Fields: fields("B2", "b2", "b2")})
	require.NoError(t, err)
	assert.Equal(t, before[1].ID, r.ID)

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, before[0], all[0])
	assert.Equal(t, r, all[1])
	assert.Equal(t, "B2", all[1].Title)
	assert.Equal(t, before[2], all[2])
}

func TestSaveEditUnknownIDAppends(t *testing.T) {
	s := newLoaded(t, memstore.New())
	seed(t, s, "A")

	r, err := s.Save(context.Background(), model.EditDraft{ID: "nope", Fields: fields("B", "b", "b")})
	require.NoError(t, err)
	assert.NotEqual(t, model.ID("nope"), r.ID)
	assert.Equal(t, 2, s.Len())
}

func TestSaveRejectsMissingFields(t *testing.T) {
	slot := memstore.New()
	s := newLoaded(t, slot)
	seed(t, s, "A")
	writes := slot.WriteCount()

	s.BeginCreate()
	s.SetFormFields(fields("Half", "", "x"))
	formBefore := s.Form()

	for _, f := range []model.Fields{
		fields("", "i", "s"),
		fields("t", "", "s"),
		fields("t", "i", ""),
		fields(" ", "\t", "\n"),
	} {
		_, err := s.Save(context.Background(), model.NewDraft{Fields: f})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrMissingField)
	}

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, formBefore, s.Form())
	assert.Equal(t, writes, slot.WriteCount())
}

func TestSaveNilDraft(t *testing.T) {
	s := newLoaded(t, memstore.New())
	_, err := s.Save(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilDraft)
}

func TestEveryMutationPersists(t *testing.T) {
	slot := memstore.New()
	s := newLoaded(t, slot)
	rs := seed(t, s, "A", "B")
	assert.Equal(t, 2, slot.WriteCount())

	_, err := s.Save(context.Background(), model.EditDraft{ID: rs[0].ID, Fields: fields("A2", "a", "a")})
	require.NoError(t, err)
	assert.Equal(t, 3, slot.WriteCount())

	_, err = s.Delete(context.Background(), rs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 4, slot.WriteCount())
}

func TestPersistFailureKeepsChange(t *testing.T) {
	m := metrics.New()
	s := New(brokenSlot{readErr: store.ErrNotFound, writeErr: errors.New("read-only")}, WithIDs(&seqIDs{}), WithMetrics(m))
	s.Load(context.Background())

	r, err := s.Save(context.Background(), model.NewDraft{Fields: fields("A", "a", "a")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.Contains(t, err.Error(), "read-only")
	assert.Equal(t, model.ID("1"), r.ID)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures))
}

func TestDelete(t *testing.T) {
	slot := memstore.New()
	s := newLoaded(t, slot)
	rs := seed(t, s, "A", "B", "C")

	removed, err := s.Delete(context.Background(), rs[1].ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []model.Recipe{rs[0], rs[2]}, s.All())

	writes := slot.WriteCount()
	removed, err = s.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []model.Recipe{rs[0], rs[2]}, s.All())
	assert.Equal(t, writes, slot.WriteCount(), "no-op delete does not rewrite the slot")
}

func TestDeleteClearsSelectionOnlyForViewedRecipe(t *testing.T) {
	s := newLoaded(t, memstore.New())
	rs := seed(t, s, "A", "B")

	s.View(rs[0].ID)
	_, err := s.Delete(context.Background(), rs[1].ID)
	require.NoError(t, err)
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, rs[0].ID, sel.ID)

	_, err = s.Delete(context.Background(), rs[0].ID)
	require.NoError(t, err)
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestViewAndClose(t *testing.T) {
	s := newLoaded(t, memstore.New())
	rs := seed(t, s, "A", "B")

	_, ok := s.Selected()
	assert.False(t, ok)

	s.View(rs[1].ID)
	s.View("unknown")
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, rs[1].ID, sel.ID)

	_, err := s.Save(context.Background(), model.EditDraft{ID: rs[1].ID, Fields: fields("B2", "b", "b")})
	require.NoError(t, err)
	sel, _ = s.Selected()
	assert.Equal(t, "B2", sel.Title, "selection follows edits")

	s.CloseView()
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestMintSkipsCollisions(t *testing.T) {
	payload := `[{"id": 1, "title": "A", "ingredients": "a", "instructions": "a"}]`
	s := New(memstore.NewWith([]byte(payload)), WithIDs(&seqIDs{}))
	s.Load(context.Background())

	r, err := s.Save(context.Background(), model.NewDraft{Fields: fields("B", "b", "b")})
	require.NoError(t, err)
	assert.Equal(t, model.ID("2"), r.ID)
}

type constIDs struct{}

func (constIDs) Next() model.ID { return "same" }

func TestMintGivesUp(t *testing.T) {
	s := New(memstore.New(), WithIDs(constIDs{}))
	s.Load(context.Background())
	_, err := s.Save(context.Background(), model.NewDraft{Fields: fields("A", "a", "a")})
	require.NoError(t, err)
	_, err = s.Save(context.Background(), model.NewDraft{Fields: fields("B", "b", "b")})
	require.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestMetricsOutcomes(t *testing.T) {
	m := metrics.New()
	s := New(memstore.New(), WithIDs(&seqIDs{}), WithMetrics(m))
	s.Load(context.Background())
	seed(t, s, "A")
	_, _ = s.Save(context.Background(), model.NewDraft{})
	_, _ = s.Delete(context.Background(), "1")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoadFallbacks.WithLabelValues("missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("save", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("save", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("delete", "deleted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Recipes))
}
