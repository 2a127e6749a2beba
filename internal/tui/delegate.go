package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/recipes/internal/model"
	"github.com/idilsaglam/recipes/internal/ui"
)

// recipeItem adapts a recipe to bubbles/list.Item
type recipeItem struct{ r model.Recipe }

func (i recipeItem) FilterValue() string { return i.r.Title }

// Two lines per recipe: title, then the ingredients preview.
type recipeDelegate struct{}

func (d recipeDelegate) Height() int                             { return 2 }
func (d recipeDelegate) Spacing() int                            { return 1 }
func (d recipeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d recipeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(recipeItem)
	if !ok {
		return
	}
	t := ui.Current()
	width := max(m.Width()-4, 20)

	prefix := "  "
	title := t.Title.Render(ui.Truncate(it.r.Title, width))
	if index == m.Index() {
		prefix = t.Accent.Render(t.SymCursor) + " "
		title = t.Selected.Render(ui.Truncate(it.r.Title, width))
	}
	preview := t.Muted.Render(ui.Truncate(it.r.Preview(model.PreviewLen), width))
	fmt.Fprintf(w, "%s%s\n  %s", prefix, title, preview)
}
