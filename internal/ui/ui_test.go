package ui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/glamour/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/recipes/internal/model"
)

func withTheme(t *testing.T, name string) {
	t.Helper()
	prev := current
	require.NoError(t, SetTheme(name))
	t.Cleanup(func() { current = prev })
}

func TestSetTheme(t *testing.T) {
	for _, name := range []string{"", "classic", "NEON", "mono"} {
		withTheme(t, name)
	}
	assert.Error(t, SetTheme("solarized"))
}

func TestSetColorMode(t *testing.T) {
	for _, mode := range []string{"auto", "always", "never"} {
		assert.NoError(t, SetColorMode(mode), mode)
	}
	assert.Error(t, SetColorMode("sometimes"))
}

func TestOKAndFailWriters(t *testing.T) {
	withTheme(t, "mono")
	var out, errOut bytes.Buffer
	prevOut, prevErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() { Stdout, Stderr = prevOut, prevErr })

	OK("saved")
	Fail("boom")
	Hint("try again")

	assert.Contains(t, out.String(), "ok saved")
	assert.Contains(t, errOut.String(), "x boom")
	assert.Contains(t, errOut.String(), "try again")
}

func TestPanelWrapsLines(t *testing.T) {
	withTheme(t, "mono")
	got := Panel([]string{"first", "second"})
	assert.Contains(t, got, "first")
	assert.Contains(t, got, "second")
	assert.Contains(t, got, "┌")
}

func TestIngredients(t *testing.T) {
	assert.Equal(t, []string{"flour", "eggs", "milk"}, Ingredients(" flour, eggs ,\nmilk,, "))
	assert.Empty(t, Ingredients(" , "))
}

func TestRecipeMarkdown(t *testing.T) {
	md := RecipeMarkdown(model.Recipe{
		Title:        "Pancakes ",
		Ingredients:  "flour, eggs",
		Instructions: "Mix and fry.",
	})
	assert.Equal(t, "# Pancakes\n\n## Ingredients\n\n- flour\n- eggs\n\n## Instructions\n\nMix and fry.\n", md)
}

func TestRenderMarkdownMonoIsPlain(t *testing.T) {
	withTheme(t, "mono")
	assert.Equal(t, "# hi\n", RenderMarkdown("# hi\n", 40, styles.DarkStyle))
}

func TestRenderMarkdownKeepsText(t *testing.T) {
	withTheme(t, "classic")
	for _, style := range []string{"", styles.NoTTYStyle, styles.DarkStyle, styles.LightStyle} {
		assert.Contains(t, RenderMarkdown("# Soup\n\nhot water\n", 0, style), "water", style)
	}
}

func TestRenderMarkdownUnknownStyleFallsBack(t *testing.T) {
	withTheme(t, "classic")
	assert.Equal(t, "# Soup\n", RenderMarkdown("# Soup\n", 40, "no-such-style"))
}

func TestDetectMarkdownStyleWithoutTerminal(t *testing.T) {
	if IsTerminal() {
		t.Skip("test output is a terminal")
	}
	assert.Equal(t, styles.NoTTYStyle, DetectMarkdownStyle())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "..", Truncate("abcdef", 2))
	assert.Empty(t, Truncate("abcdef", -4))
	assert.Equal(t, "çé...", Truncate("çéàèù-long", 5))
}
