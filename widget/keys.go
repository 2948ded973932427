package widget

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Import  key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func newKeyMap(canImport bool) keyMap {
	keys := keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "look up")),
		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Import:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "import tracks")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
	keys.Import.SetEnabled(canImport)
	return keys
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Import, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Next, k.Prev},
		{k.Import, k.Quit},
	}
}
