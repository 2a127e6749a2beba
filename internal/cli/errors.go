package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/recipes/internal/model"
)

// usageError is a bad invocation: wrong arguments, unknown ids or an
// aborted prompt. It maps to exit code 2.
type usageError struct {
	msg  string
	hint string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func unknownID(id string) error {
	return &usageError{
		msg:  "no recipe with id " + id,
		hint: "Hint: run `recipes ls` to see recipe ids",
	}
}

// exitCode maps an error onto 0 ok, 1 runtime error, 2 usage or validation.
func exitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ue), errors.Is(err, model.ErrMissingField):
		return 2
	}
	return 1
}

// report prints err the way the user should see it.
func report(err error) string {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("All fields are required! (missing %s)", strings.Join(verr.Missing, ", "))
	}
	return err.Error()
}
