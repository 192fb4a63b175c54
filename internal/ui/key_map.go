package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	focus        key.Binding
	save         key.Binding
	paste        key.Binding
	clearInput   key.Binding
	up           key.Binding
	down         key.Binding
	copy         key.Binding
	del          key.Binding
	mark         key.Binding
	deleteMarked key.Binding
	unmark       key.Binding
	help         key.Binding
	quit         key.Binding
	forceQuit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		focus:        key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		save:         key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		paste:        key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		clearInput:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear input")),
		up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		copy:         key.NewBinding(key.WithKeys("c", "enter"), key.WithHelp("c/enter", "copy")),
		del:          key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		mark:         key.NewBinding(key.WithKeys(" ", "space", "m"), key.WithHelp("space", "mark")),
		deleteMarked: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete marked")),
		unmark:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unmark all")),
		help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQuit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.focus, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.save, k.paste, k.clearInput},
		{k.up, k.down, k.copy},
		{k.del, k.mark, k.deleteMarked, k.unmark},
		{k.focus, k.help, k.quit},
	}
}
