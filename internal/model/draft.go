package model

import (
	"errors"
	"fmt"
	"strings"
)

// Fields are the user-editable parts of a recipe.
type Fields struct {
	Title        string
	Ingredients  string
	Instructions string
}

// ErrMissingField is matched by every ValidationError.
var ErrMissingField = errors.New("all fields are required")

// ValidationError lists the required fields that were left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrMissingField, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrMissingField }

// Validate rejects fields that are empty or whitespace only.
func (f Fields) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(f.Ingredients) == "" {
		missing = append(missing, "ingredients")
	}
	if strings.TrimSpace(f.Instructions) == "" {
		missing = append(missing, "instructions")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Draft is an unsaved recipe: either a NewDraft or an EditDraft.
type Draft interface {
	DraftFields() Fields
	isDraft()
}

// NewDraft creates a recipe when saved.
type NewDraft struct {
	Fields
}

// EditDraft replaces the fields of recipe ID when saved.
type EditDraft struct {
	ID ID
	Fields
}

func (d NewDraft) DraftFields() Fields  { return d.Fields }
func (d EditDraft) DraftFields() Fields { return d.Fields }

func (NewDraft) isDraft()  {}
func (EditDraft) isDraft() {}
