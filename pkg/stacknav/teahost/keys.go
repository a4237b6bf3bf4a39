package teahost

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keys the host handles itself. A current screen that
// implements KeyHandler sees every key first, except ForceQuit.
type KeyMap struct {
	Back      key.Binding
	Top       key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "top"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
