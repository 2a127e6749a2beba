package tui

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/recipes/internal/ui"
)

const emptyMessage = "No recipes found."

func (m Model) View() string {
	t := ui.Current()
	var body string
	switch m.mode {
	case modeForm:
		body = m.formView()
	case modeDetail:
		body = m.detail.View()
	default:
		body = m.listView()
	}

	parts := []string{m.header(), "", body, ""}
	if m.status != "" {
		st := t.Success
		if m.statusErr {
			st = t.Error
		}
		parts = append(parts, st.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys.forMode(m.mode)))
	return ui.PanelStyle().Render(strings.Join(parts, "\n"))
}

func (m Model) header() string {
	t := ui.Current()
	shown := len(m.list.Items())
	counts := fmt.Sprintf("%d recipes", m.store.Len())
	if m.query != "" {
		counts = fmt.Sprintf("%d of %d recipes", shown, m.store.Len())
	}
	return t.Title.Render("Recipes") + "   " + t.Muted.Render(counts)
}

func (m Model) listView() string {
	t := ui.Current()
	var lines []string
	if m.mode == modeSearch || m.query != "" {
		lines = append(lines, m.search.View(), "")
	}
	if len(m.list.Items()) == 0 {
		lines = append(lines, t.Muted.Render(emptyMessage))
	} else {
		lines = append(lines, m.list.View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) formView() string {
	t := ui.Current()
	f := m.store.Form()
	return strings.Join([]string{
		t.Title.Render(f.Heading()),
		"",
		t.Label.Render("Title"),
		m.title.View(),
		"",
		t.Label.Render("Ingredients"),
		m.ingredients.View(),
		"",
		t.Label.Render("Instructions"),
		m.instructions.View(),
		"",
		t.Accent.Render("ctrl+s " + f.SubmitLabel()),
	}, "\n")
}
