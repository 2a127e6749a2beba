// Package recipes owns the in-memory recipe collection and mirrors it to a
// persisted slot. Every mutation rewrites the whole slot.
package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/idilsaglam/recipes/internal/metrics"
	"github.com/idilsaglam/recipes/internal/model"
	"github.com/idilsaglam/recipes/internal/store"
)

var (
	// ErrPersist wraps slot write failures. The in-memory change is kept.
	ErrPersist = errors.New("persist recipes")
	// ErrNilDraft is returned by Save when given no draft.
	ErrNilDraft = errors.New("nil draft")
	// ErrFormClosed is returned by SubmitForm when no form is open.
	ErrFormClosed = errors.New("form is not open")
)

const maxMintAttempts = 64

// Store holds the ordered recipe collection plus the transient view state
// (selected recipe, form buffer). It is not safe for concurrent use.
type Store struct {
	slot    store.Slot
	log     *slog.Logger
	metrics *metrics.Metrics
	ids     IDGenerator

	recipes  []model.Recipe
	selected model.ID
	form     Form
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.log = l } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Store) { s.metrics = m } }

func WithIDs(g IDGenerator) Option { return func(s *Store) { s.ids = g } }

// New returns an empty store over slot. Call Load before use.
func New(slot store.Slot, opts ...Option) *Store {
	s := &Store{
		slot:    slot,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:     &ClockIDs{},
		recipes: []model.Recipe{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the collection with the slot contents. A missing,
// unreadable or undecodable slot yields an empty collection.
func (s *Store) Load(ctx context.Context) {
	s.recipes = s.read(ctx)
	s.selected = ""
	s.form = Form{}
	s.metrics.Op("load", "ok")
	s.metrics.SetRecipes(len(s.recipes))
	s.log.Debug("recipes loaded", "driver", s.slot.Driver(), "count", len(s.recipes))
}

func (s *Store) read(ctx context.Context) []model.Recipe {
	b, err := s.slot.Read(ctx)
	if errors.Is(err, store.ErrNotFound) {
		s.metrics.Fallback("missing")
		s.log.Debug("no saved recipes yet", "driver", s.slot.Driver())
		return []model.Recipe{}
	}
	if err != nil {
		s.metrics.Fallback("unreadable")
		s.log.Warn("cannot read saved recipes, starting empty", "driver", s.slot.Driver(), "err", err)
		return []model.Recipe{}
	}
	var decoded []model.Recipe
	if err := json.Unmarshal(b, &decoded); err != nil {
		s.metrics.Fallback("corrupt")
		s.log.Warn("saved recipes are not a recipe list, starting empty", "driver", s.slot.Driver(), "err", err)
		return []model.Recipe{}
	}
	taken := make(map[model.ID]bool, len(decoded))
	for _, r := range decoded {
		taken[r.ID] = true
	}
	out := make([]model.Recipe, 0, len(decoded))
	seen := make(map[model.ID]bool, len(decoded))
	for _, r := range decoded {
		if r.ID.IsZero() {
			r.ID = s.mintAvoiding(taken)
			taken[r.ID] = true
			s.log.Info("assigned id to saved recipe without one", "id", r.ID, "title", r.Title)
		}
		if seen[r.ID] {
			s.log.Warn("dropping saved recipe with duplicate id", "id", r.ID, "title", r.Title)
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}

// persist writes the full collection to the slot.
func (s *Store) persist(ctx context.Context) error {
	s.metrics.SetRecipes(len(s.recipes))
	b, err := json.MarshalIndent(s.recipes, "", "  ")
	if err == nil {
		err = s.slot.Write(ctx, b)
	}
	if err != nil {
		s.metrics.PersistFailed()
		s.log.Error("cannot save recipes", "driver", s.slot.Driver(), "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Save creates or updates a recipe. An EditDraft naming an existing recipe
// replaces its fields in place; anything else is appended under a new id.
// On success the form is closed.
func (s *Store) Save(ctx context.Context, d model.Draft) (model.Recipe, error) {
	if d == nil {
		return model.Recipe{}, ErrNilDraft
	}
	f := d.DraftFields()
	if err := f.Validate(); err != nil {
		s.metrics.Op("save", "invalid")
		return model.Recipe{}, err
	}

	var saved model.Recipe
	op := "created"
	if e, ok := d.(model.EditDraft); ok {
		if i := s.index(e.ID); i >= 0 {
			s.recipes[i] = s.recipes[i].With(f)
			saved, op = s.recipes[i], "updated"
		}
	}
	if op == "created" {
		id, err := s.mint()
		if err != nil {
			s.metrics.Op("save", "error")
			return model.Recipe{}, err
		}
		saved = model.Recipe{ID: id}.With(f)
		s.recipes = append(s.recipes, saved)
	}
	s.form = Form{}
	s.metrics.Op("save", op)
	s.log.Debug("recipe saved", "outcome", op, "id", saved.ID)
	return saved, s.persist(ctx)
}

// Delete removes the recipe with id. It reports whether anything was removed;
// an unknown id is not an error and does not touch the slot.
func (s *Store) Delete(ctx context.Context, id model.ID) (bool, error) {
	i := s.index(id)
	if i < 0 {
		s.metrics.Op("delete", "missing")
		return false, nil
	}
	s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	s.metrics.Op("delete", "deleted")
	s.log.Debug("recipe deleted", "id", id)
	return true, s.persist(ctx)
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []model.Recipe {
	out := make([]model.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Len returns the number of recipes.
func (s *Store) Len() int { return len(s.recipes) }

// Get looks up a recipe by id.
func (s *Store) Get(id model.ID) (model.Recipe, bool) {
	if i := s.index(id); i >= 0 {
		return s.recipes[i], true
	}
	return model.Recipe{}, false
}

// Driver reports the slot backend.
func (s *Store) Driver() store.Driver { return s.slot.Driver() }

func (s *Store) index(id model.ID) int {
	if id.IsZero() {
		return -1
	}
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) mint() (model.ID, error) {
	for range maxMintAttempts {
		id := s.ids.Next()
		if !id.IsZero() && s.index(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("mint recipe id: %d attempts collided", maxMintAttempts)
}

// mintAvoiding is used while decoding, before s.recipes is populated.
func (s *Store) mintAvoiding(taken map[model.ID]bool) model.ID {
	for range maxMintAttempts {
		if id := s.ids.Next(); !id.IsZero() && !taken[id] {
			return id
		}
	}
	return UUIDs{}.Next()
}
