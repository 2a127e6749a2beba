// Package tui is the interactive recipe browser: a searchable list, an
// add/edit form and a detail panel, all backed by one *recipes.Store.
package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour/styles"

	"github.com/idilsaglam/recipes/internal/model"
	"github.com/idilsaglam/recipes/internal/recipes"
	"github.com/idilsaglam/recipes/internal/ui"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeDetail
)

// form field order for tab cycling
const (
	fieldTitle = iota
	fieldIngredients
	fieldInstructions
	fieldCount
)

// Model implements tea.Model over a loaded store. Every mutation is
// persisted by the store before Update returns.
type Model struct {
	ctx   context.Context
	store *recipes.Store
	log   *slog.Logger
	keys  keyMap

	mode   mode
	list   list.Model
	search textinput.Model
	query  string

	title        textinput.Model
	ingredients  textarea.Model
	instructions textarea.Model
	focus        int

	detail  viewport.Model
	mdStyle string
	help    help.Model

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the model. s must already be loaded.
func New(ctx context.Context, s *recipes.Store, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := list.New(nil, recipeDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.PaginationStyle = ui.Current().Muted

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search recipes..."

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Recipe Title"

	ingredients := textarea.New()
	ingredients.Placeholder = "Ingredients (comma-separated)"
	ingredients.ShowLineNumbers = false
	ingredients.CharLimit = 0
	ingredients.SetHeight(3)

	instructions := textarea.New()
	instructions.Placeholder = "Instructions"
	instructions.ShowLineNumbers = false
	instructions.CharLimit = 0
	instructions.SetHeight(5)

	m := Model{
		ctx:          ctx,
		store:        s,
		log:          log,
		keys:         defaultKeys(),
		list:         l,
		search:       search,
		title:        title,
		ingredients:  ingredients,
		instructions: instructions,
		detail:       viewport.New(0, 0),
		mdStyle:      styles.NoTTYStyle,
		help:         help.New(),
	}
	m.resize(ui.Size())
	m.refresh()
	return m
}

// Run drives the program until the user quits or ctx is cancelled.
func Run(ctx context.Context, s *recipes.Store, log *slog.Logger) error {
	m := New(ctx, s, log)
	// Detected before the program owns stdin.
	m.mdStyle = ui.DetectMarkdownStyle()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return tea.SetWindowTitle("Recipes") }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(ws.Width, ws.Height)
		if m.mode == modeDetail {
			m.renderDetail()
		}
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeDetail:
		return m.updateDetail(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(k, m.keys.Search):
			m.mode = modeSearch
			m.status = ""
			return m, m.search.Focus()
		case key.Matches(k, m.keys.Add):
			m.store.BeginCreate()
			return m, m.openForm()
		case key.Matches(k, m.keys.Edit):
			if r, ok := m.current(); ok && m.store.BeginEdit(r.ID) {
				return m, m.openForm()
			}
			return m, nil
		case key.Matches(k, m.keys.View):
			if r, ok := m.current(); ok {
				m.store.View(r.ID)
				m.mode = modeDetail
				m.renderDetail()
			}
			return m, nil
		case key.Matches(k, m.keys.Delete):
			if r, ok := m.current(); ok {
				m.remove(r.ID)
			}
			return m, nil
		case key.Matches(k, m.keys.Back):
			if m.query != "" {
				m.search.SetValue("")
				m.query = ""
				m.refresh()
			}
			m.status = ""
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.search.Blur()
			m.mode = modeList
			return m, nil
		case "esc":
			m.search.SetValue("")
			m.search.Blur()
			m.query = ""
			m.mode = modeList
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.query {
		m.query = v
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.String() == "esc":
			m.store.CancelForm()
			m.closeForm()
			return m, nil
		case key.Matches(k, m.keys.Submit):
			return m.submit()
		case key.Matches(k, m.keys.Next), k.String() == "enter" && m.focus == fieldTitle:
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case key.Matches(k, m.keys.Prev):
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		}
	}
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldIngredients:
		m.ingredients, cmd = m.ingredients.Update(msg)
	case fieldInstructions:
		m.instructions, cmd = m.instructions.Update(msg)
	}
	m.store.SetFormFields(m.formFields())
	return m, cmd
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Close), k.String() == "q":
			m.store.CloseView()
			m.mode = modeList
			return m, nil
		case key.Matches(k, m.keys.Edit):
			if r, ok := m.store.Selected(); ok && m.store.BeginEdit(r.ID) {
				return m, m.openForm()
			}
			return m, nil
		case key.Matches(k, m.keys.Delete):
			if r, ok := m.store.Selected(); ok {
				m.remove(r.ID)
			}
			m.mode = modeList
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// submit saves the form. A validation failure keeps the form open with the
// input intact.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.store.SetFormFields(m.formFields())
	verb := "added"
	if m.store.Form().State == recipes.FormEditing {
		verb = "updated"
	}
	saved, err := m.store.SubmitForm(m.ctx)

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		m.setError("All fields are required! (missing " + strings.Join(verr.Missing, ", ") + ")")
		return m, nil
	case errors.Is(err, recipes.ErrFormClosed):
	case err != nil:
		m.log.Error("save recipe", "id", saved.ID, "err", err)
		m.setError(verb + " but not saved to disk: " + err.Error())
	default:
		m.setStatus(verb + " " + saved.Title)
	}
	m.closeForm()
	m.refresh()
	m.selectID(saved.ID)
	return m, nil
}

// remove deletes id and refreshes the list. Unknown ids are a no-op.
func (m *Model) remove(id model.ID) {
	deleted, err := m.store.Delete(m.ctx, id)
	switch {
	case err != nil:
		m.log.Error("delete recipe", "id", id, "err", err)
		m.setError("deleted but not saved to disk: " + err.Error())
	case deleted:
		m.setStatus("deleted")
	}
	m.refresh()
}

// openForm loads the store's form buffer into the inputs.
func (m *Model) openForm() tea.Cmd {
	f := m.store.Form().Fields
	m.title.SetValue(f.Title)
	m.title.CursorEnd()
	m.ingredients.SetValue(f.Ingredients)
	m.instructions.SetValue(f.Instructions)
	m.mode = modeForm
	m.status = ""
	return m.setFocus(fieldTitle)
}

// closeForm returns to the detail panel when a recipe is still selected.
func (m *Model) closeForm() {
	m.title.Blur()
	m.ingredients.Blur()
	m.instructions.Blur()
	if _, ok := m.store.Selected(); ok {
		m.mode = modeDetail
		m.renderDetail()
		return
	}
	m.mode = modeList
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	m.title.Blur()
	m.ingredients.Blur()
	m.instructions.Blur()
	switch i {
	case fieldIngredients:
		return m.ingredients.Focus()
	case fieldInstructions:
		return m.instructions.Focus()
	}
	return m.title.Focus()
}

func (m Model) formFields() model.Fields {
	return model.Fields{
		Title:        m.title.Value(),
		Ingredients:  m.ingredients.Value(),
		Instructions: m.instructions.Value(),
	}
}

// refresh reloads the list from the current search.
func (m *Model) refresh() {
	var items []list.Item
	for r := range m.store.Search(m.query) {
		items = append(items, recipeItem{r})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m *Model) selectID(id model.ID) {
	for i, it := range m.list.Items() {
		if ri, ok := it.(recipeItem); ok && ri.r.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) current() (model.Recipe, bool) {
	it, ok := m.list.SelectedItem().(recipeItem)
	if !ok {
		return model.Recipe{}, false
	}
	return it.r, true
}

func (m *Model) renderDetail() {
	r, ok := m.store.Selected()
	if !ok {
		m.mode = modeList
		return
	}
	m.detail.SetContent(ui.RenderMarkdown(ui.RecipeMarkdown(r), m.detail.Width, m.mdStyle))
	m.detail.GotoTop()
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	inner := max(w-4, 20)
	body := max(h-8, 4)
	m.list.SetSize(inner, body)
	m.detail.Width = inner
	m.detail.Height = body
	m.search.Width = max(inner-4, 10)
	m.title.Width = max(inner-2, 10)
	m.ingredients.SetWidth(inner)
	m.instructions.SetWidth(inner)
	m.help.Width = inner
}

func (m *Model) setStatus(msg string) { m.status, m.statusErr = msg, false }
func (m *Model) setError(msg string)  { m.status, m.statusErr = msg, true }
