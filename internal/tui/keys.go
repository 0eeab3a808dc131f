package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// ReservedKeys cannot be used as the keyer key.
var ReservedKeys = []string{"+", "=", "-", "_", "c", "r", "?"}

type keyMap struct {
	Keyer  key.Binding
	Faster key.Binding
	Slower key.Binding
	Color  key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap(keyerKey string) keyMap {
	return keyMap{
		Keyer: key.NewBinding(
			key.WithKeys(keyerKey),
			key.WithHelp(keyLabel(keyerKey), "tap down, tap up"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Color: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "color"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart timing"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Keyer, k.Faster, k.Slower, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Keyer, k.Reset, k.Quit},
		{k.Faster, k.Slower, k.Color, k.Help},
	}
}
