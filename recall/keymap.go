package recall

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	enter key.Binding
	stop  key.Binding
	esc   key.Binding
	quit  key.Binding
}

var defaultKeymap = keymap{
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "continue"),
	),
	stop: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s/enter", "stop recording"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "exit test"),
	),
	quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
