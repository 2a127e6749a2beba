package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PanelStyle is the framed box around every view.
func PanelStyle() lipgloss.Style {
	t := current
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
}

// Panel renders lines inside the themed frame.
func Panel(lines []string) string {
	return PanelStyle().Render(strings.Join(lines, "\n"))
}

// PrintPanel writes a panel to Stdout.
func PrintPanel(lines []string) {
	fmt.Fprintln(Stdout, Panel(lines))
}
