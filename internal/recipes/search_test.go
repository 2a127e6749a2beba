package recipes

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/recipes/internal/model"
	"github.com/idilsaglam/recipes/internal/store/memstore"
)

func titles(rs []model.Recipe) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Title)
	}
	return out
}

func TestSearch(t *testing.T) {
	s := newLoaded(t, memstore.New())
	for _, f := range []model.Fields{
		fields("Pasta Bake", "pasta, tomato, mozzarella", "bake 30 min"),
		fields("Green Salad", "lettuce, cucumber", "toss"),
		fields("Tomato Soup", "TOMATO, stock", "simmer"),
	} {
		_, err := s.Save(t.Context(), model.NewDraft{Fields: f})
		require.NoError(t, err)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"Pasta Bake", "Green Salad", "Tomato Soup"}},
		{query: "sa", want: []string{"Green Salad"}},
		{query: "TOMATO", want: []string{"Pasta Bake", "Tomato Soup"}},
		{query: "Cucumber", want: []string{"Green Salad"}},
		{query: "simmer", want: nil},
		{query: "zzz", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := titles(slices.Collect(s.Search(tt.query)))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchIsLazyAndRestartable(t *testing.T) {
	s := newLoaded(t, memstore.New())
	seed(t, s, "A", "B", "C")

	seq := s.Search("")
	var first []string
	for r := range seq {
		first = append(first, r.Title)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, first)
	assert.Equal(t, []string{"A", "B", "C"}, titles(slices.Collect(seq)))

	seed(t, s, "D")
	assert.Len(t, slices.Collect(seq), 4, "the sequence reflects the collection when ranged")
}

func TestMatchesFoldsCase(t *testing.T) {
	r := model.Recipe{Title: "Crème Brûlée", Ingredients: "Straße eggs"}
	assert.True(t, Matches(r, "CRÈME"))
	assert.True(t, Matches(r, "strasse"))
	assert.True(t, Matches(r, ""))
	assert.False(t, Matches(r, "vanilla"))
}
