package recipes

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"

	"github.com/idilsaglam/recipes/internal/model"
)

// Search yields, in insertion order, the recipes whose title or ingredients
// contain query case-insensitively. An empty query yields every recipe.
// The sequence reads the collection each time it is ranged over.
func (s *Store) Search(query string) iter.Seq[model.Recipe] {
	needle := fold(query)
	s.metrics.Op("search", "ok")
	return func(yield func(model.Recipe) bool) {
		for _, r := range s.recipes {
			if !matchFolded(r, needle) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Matches reports whether r is part of the results for query.
func Matches(r model.Recipe, query string) bool {
	return matchFolded(r, fold(query))
}

func matchFolded(r model.Recipe, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(fold(r.Title), needle) || strings.Contains(fold(r.Ingredients), needle)
}

func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}
