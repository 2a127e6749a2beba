package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit, ForceQuit, Search, Add, Edit, View, Delete, Back, Help key.Binding
	Submit, Next, Prev, Close                                    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		View:      key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "view")),
		Delete:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Close:     key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc", "close")),
	}
}

// bindings is the help.KeyMap for one screen.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (k keyMap) forMode(md mode) bindings {
	switch md {
	case modeSearch:
		return bindings{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	case modeForm:
		return bindings{k.Submit, k.Next, k.Prev, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))}
	case modeDetail:
		return bindings{k.Close, k.Edit, k.Delete}
	}
	return bindings{k.Add, k.View, k.Edit, k.Delete, k.Search, k.Back, k.Quit}
}
