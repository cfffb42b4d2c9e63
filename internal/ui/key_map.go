package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the review TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	accept key.Binding
	reject key.Binding
	back   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept proposed"),
		),
		reject: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "mark unmatched"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "finish review"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.enter, k.accept, k.reject, k.back, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.accept, k.reject, k.back, k.quit},
	}
}
