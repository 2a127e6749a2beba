package recipes

import "github.com/idilsaglam/recipes/internal/model"

// View selects the recipe shown in the detail panel. Unknown ids are ignored.
func (s *Store) View(id model.ID) {
	if s.index(id) >= 0 {
		s.selected = id
	}
}

// CloseView clears the selection.
func (s *Store) CloseView() { s.selected = "" }

// Selected returns the current version of the selected recipe.
func (s *Store) Selected() (model.Recipe, bool) {
	if s.selected.IsZero() {
		return model.Recipe{}, false
	}
	return s.Get(s.selected)
}
