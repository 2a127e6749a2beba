package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Selected, Label lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	SymOK, SymFail, SymCursor, SymBullet string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:        "classic",
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		SymOK:       "✔", SymFail: "✖", SymCursor: ">", SymBullet: "•",
	}
}

func neon() Theme {
	return Theme{
		Name:        "neon",
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Border:      lipgloss.DoubleBorder(),
		BorderColor: lipgloss.Color("13"),
		SymOK:       "◼", SymFail: "✖", SymCursor: "▶", SymBullet: "◆",
	}
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Label: plain,
		Selected:    plain.Reverse(true),
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.NoColor{},
		SymOK:       "ok", SymFail: "x", SymCursor: ">", SymBullet: "-",
	}
}

// SetTheme switches the active theme. The mono theme also turns colors off.
func SetTheme(name string) error {
	switch strings.ToLower(name) {
	case "", "classic":
		current = classic()
	case "neon":
		current = neon()
	case "mono":
		current = mono()
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("unknown theme %q (want classic, neon or mono)", name)
	}
	return nil
}

// Current exposes what renderers need.
func Current() Theme { return current }
