package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start        key.Binding
	Reset        key.Binding
	Instructions key.Binding
	Easy         key.Binding
	Medium       key.Binding
	Hard         key.Binding
	Share        key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Instructions: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "how to play"),
		),
		Easy: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "easy"),
		),
		Medium: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "medium"),
		),
		Hard: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "hard"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share score"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Reset, k.Instructions, k.Easy, k.Medium, k.Hard, k.Share, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Reset, k.Instructions},
		{k.Easy, k.Medium, k.Hard},
		{k.Share, k.Quit},
	}
}
