package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/recipes/internal/model"
)

// RecipeMarkdown lays a recipe out as a markdown document. Comma-separated
// ingredients become a bullet list.
func RecipeMarkdown(r model.Recipe) string {
	var b strings.Builder
	b.WriteString("# " + strings.TrimSpace(r.Title) + "\n\n")
	b.WriteString("## Ingredients\n\n")
	for _, ing := range Ingredients(r.Ingredients) {
		b.WriteString("- " + ing + "\n")
	}
	b.WriteString("\n## Instructions\n\n")
	b.WriteString(strings.TrimSpace(r.Instructions) + "\n")
	return b.String()
}

// Ingredients splits comma or newline separated ingredient text.
func Ingredients(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DetectMarkdownStyle picks a glamour standard style for the current
// terminal. It may query the terminal for its background color, so call it
// before a Bubble Tea program takes over stdin.
func DetectMarkdownStyle() string {
	if !IsTerminal() {
		return styles.NoTTYStyle
	}
	if termenv.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

// RenderMarkdown renders markdown for the terminal in the given glamour
// standard style (see DetectMarkdownStyle). It returns the input unchanged
// when colors are off or rendering fails.
func RenderMarkdown(md string, width int, style string) string {
	if current.Name == "mono" {
		return md
	}
	if style == "" {
		style = styles.NoTTYStyle
	}
	const maxReadableWidth = 100
	if width <= 0 || width > maxReadableWidth {
		width = maxReadableWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
