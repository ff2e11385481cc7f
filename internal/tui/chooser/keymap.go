package chooser

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the chooser.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Accept     key.Binding
	AcceptText key.Binding
	Cancel     key.Binding
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑/ctrl+p", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓/ctrl+n", "down"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	AcceptText: key.NewBinding(
		key.WithKeys("alt+enter"),
		key.WithHelp("alt+enter", "use typed name"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.AcceptText, k.Cancel}
}
