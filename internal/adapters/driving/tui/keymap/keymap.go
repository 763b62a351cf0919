// Package keymap defines keybindings for the annotator TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Up   key.Binding
	Down key.Binding

	// Category, Label and Subtype cycle the selected chunk's value.
	Category key.Binding
	Label    key.Binding
	Subtype  key.Binding

	// Mark picks the selected chunk as relation source.
	Mark key.Binding

	// RelationType cycles the kind used by Relate.
	RelationType key.Binding

	// Relate links the marked chunk to the selected chunk.
	Relate key.Binding

	// Export writes the export file.
	Export key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		Label: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "label"),
		),
		Subtype: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "subtype"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark source"),
		),
		RelationType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "relation type"),
		),
		Relate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "relate marked → here"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Category, k.Label, k.Subtype, k.Export, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help view, grouped by column.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Category, k.Label, k.Subtype},
		{k.Mark, k.RelationType, k.Relate},
		{k.Export, k.Help, k.Quit},
	}
}
