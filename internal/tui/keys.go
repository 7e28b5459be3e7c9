package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Right   key.Binding
	Left    key.Binding
	Enter   key.Binding
	Refresh key.Binding
	New     key.Binding
	Escape  key.Binding
	Quit    key.Binding
	CtrlC   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
