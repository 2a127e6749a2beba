package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Output streams for status lines; tests swap them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// SetColorMode applies ui.color: "always" forces the profile detected from
// the environment even when stdout is not a terminal, "never" strips colors,
// "auto" keeps lipgloss' own detection.
func SetColorMode(mode string) error {
	switch strings.ToLower(mode) {
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	case "always":
		p := termenv.EnvColorProfile()
		if p == termenv.Ascii {
			p = termenv.ANSI256
		}
		lipgloss.SetColorProfile(p)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("unknown color mode %q", mode)
	}
	return nil
}

// OK prints a success line to Stdout.
func OK(msg string) {
	t := current
	fmt.Fprintln(Stdout, t.Success.Render(t.SymOK+" "+msg))
}

// Fail prints an error line to Stderr.
func Fail(msg string) {
	t := current
	fmt.Fprintln(Stderr, t.Error.Render(t.SymFail+" "+msg))
}

// Hint prints a muted line to Stderr.
func Hint(msg string) {
	fmt.Fprintln(Stderr, current.Muted.Render(msg))
}
