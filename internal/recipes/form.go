package recipes

import (
	"context"

	"github.com/idilsaglam/recipes/internal/model"
)

// FormState is the state of the add/edit form.
type FormState int

const (
	FormClosed   FormState = iota
	FormCreating           // buffer has no id yet
	FormEditing            // buffer is bound to an existing recipe
)

func (s FormState) String() string {
	switch s {
	case FormCreating:
		return "creating"
	case FormEditing:
		return "editing"
	default:
		return "closed"
	}
}

// Form is the in-progress draft behind the add/edit form.
type Form struct {
	State  FormState
	ID     model.ID
	Fields model.Fields
}

// Open reports whether the form is shown.
func (f Form) Open() bool { return f.State != FormClosed }

// Draft turns the buffer into the variant Save expects.
func (f Form) Draft() model.Draft {
	if f.State == FormEditing {
		return model.EditDraft{ID: f.ID, Fields: f.Fields}
	}
	return model.NewDraft{Fields: f.Fields}
}

// Heading is the form title.
func (f Form) Heading() string {
	if f.State == FormEditing {
		return "Edit Recipe"
	}
	return "Add Recipe"
}

// SubmitLabel is the label of the save action.
func (f Form) SubmitLabel() string {
	if f.State == FormEditing {
		return "Update Recipe"
	}
	return "Add Recipe"
}

// Form returns a snapshot of the form buffer.
func (s *Store) Form() Form { return s.form }

// BeginCreate opens an empty form. Any open buffer is discarded.
func (s *Store) BeginCreate() {
	s.form = Form{State: FormCreating}
}

// BeginEdit opens the form pre-filled with recipe id. It reports false and
// leaves the form alone when id is unknown.
func (s *Store) BeginEdit(id model.ID) bool {
	r, ok := s.Get(id)
	if !ok {
		return false
	}
	s.form = Form{State: FormEditing, ID: r.ID, Fields: r.Fields()}
	return true
}

// SetFormFields replaces the buffered fields. Ignored while the form is closed.
func (s *Store) SetFormFields(f model.Fields) {
	if s.form.Open() {
		s.form.Fields = f
	}
}

// CancelForm closes the form and discards the buffer.
func (s *Store) CancelForm() { s.form = Form{} }

// SubmitForm saves the buffer. A validation error leaves the form open with
// its input intact.
func (s *Store) SubmitForm(ctx context.Context) (model.Recipe, error) {
	if !s.form.Open() {
		return model.Recipe{}, ErrFormClosed
	}
	return s.Save(ctx, s.form.Draft())
}
