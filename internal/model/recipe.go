package model

import (
	"strings"
	"unicode/utf8"
)

// Recipe is the domain model for a stored recipe.
type Recipe struct {
	ID           ID     `json:"id" yaml:"id" toml:"id"`
	Title        string `json:"title" yaml:"title" toml:"title"`
	Ingredients  string `json:"ingredients" yaml:"ingredients" toml:"ingredients"`
	Instructions string `json:"instructions" yaml:"instructions" toml:"instructions"`
}

// Fields returns the editable part of r.
func (r Recipe) Fields() Fields {
	return Fields{Title: r.Title, Ingredients: r.Ingredients, Instructions: r.Instructions}
}

// With returns a copy of r carrying f.
func (r Recipe) With(f Fields) Recipe {
	r.Title, r.Ingredients, r.Instructions = f.Title, f.Ingredients, f.Instructions
	return r
}

// PreviewLen is how much of the ingredients text a list row shows.
const PreviewLen = 50

// Preview returns the first n runes of the ingredients followed by "...".
func (r Recipe) Preview(n int) string {
	s := strings.Join(strings.Fields(r.Ingredients), " ")
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) > n {
		s = string([]rune(s)[:n])
	}
	return s + "..."
}
