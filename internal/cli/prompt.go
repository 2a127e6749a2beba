package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/idilsaglam/recipes/internal/model"
)

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// promptFields runs a huh form over f.
func promptFields(heading string, f *model.Fields) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(heading).
				Description("Title").
				Placeholder("Recipe Title").
				Value(&f.Title).
				Validate(required("title")),

			huh.NewText().
				Title("Ingredients").
				Description("Comma-separated").
				Placeholder("flour, eggs, milk").
				CharLimit(0).
				Value(&f.Ingredients).
				Validate(required("ingredients")),

			huh.NewText().
				Title("Instructions").
				Placeholder("Mix, then bake for 20 minutes...").
				CharLimit(0).
				Value(&f.Instructions).
				Validate(required("instructions")),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return usagef("%s cancelled", strings.ToLower(heading))
		}
		return fmt.Errorf("form: %w", err)
	}
	return nil
}
