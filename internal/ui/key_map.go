package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	back   key.Binding
	create key.Binding
	delete key.Binding
	search key.Binding
	remove key.Binding
	stream key.Binding
	yes    key.Binding
	no     key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		create: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new playlist")),
		delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		search: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search songs")),
		remove: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove song")),
		stream: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "stream")),
		yes:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.create, k.delete, k.search},
		{k.remove, k.stream, k.quit},
	}
}
