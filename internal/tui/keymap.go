package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines global key bindings used across the TUI. Plain letters go to
// the comment input, so every action sits behind a modifier or function key.
type keyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Send        key.Binding
	Special     key.Binding
	Fireworks   key.Binding
	Sound       key.Binding
	MouseFollow key.Binding
	CycleTheme  key.Binding
	Theme       key.Binding
	Quick       key.Binding
	Presets     key.Binding
	Egg         key.Binding
	Escape      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("alt+h", "f12"),
			key.WithHelp("alt+h", "toggle help"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Special: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "special comment"),
		),
		Fireworks: key.NewBinding(
			key.WithKeys("alt+f"),
			key.WithHelp("alt+f", "firework show"),
		),
		Sound: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "toggle sound"),
		),
		MouseFollow: key.NewBinding(
			key.WithKeys("alt+m"),
			key.WithHelp("alt+m", "mouse sparkles"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("alt+t"),
			key.WithHelp("alt+t", "next theme"),
		),
		Theme: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5"),
			key.WithHelp("alt+1…5", "pick theme"),
		),
		Quick: key.NewBinding(
			key.WithKeys("f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10"),
			key.WithHelp("f1…f10", "quick message"),
		),
		Presets: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "presets"),
		),
		Egg: key.NewBinding(
			key.WithKeys("alt+e"),
			key.WithHelp("alt+e", "poke the title"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Special, k.Fireworks, k.Sound, k.CycleTheme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Special, k.Quick, k.Presets, k.Escape},
		{k.Fireworks, k.Egg, k.MouseFollow},
		{k.Sound, k.Theme, k.CycleTheme},
		{k.Help, k.Quit},
	}
}
