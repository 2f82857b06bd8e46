// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// NextView cycles sources -> review -> comments.
	NextView key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// ToggleInclude flips a match card's inclusion state.
	ToggleInclude key.Binding

	// NextMatch cycles forward through a card's matched spans.
	NextMatch key.Binding

	// PrevMatch cycles backward through a card's matched spans.
	PrevMatch key.Binding

	// Comment starts a comment on the current position.
	Comment key.Binding

	// Quickmark drops a quickmark at the current position.
	Quickmark key.Binding

	// Annotate begins a point-annotation placement.
	Annotate key.Binding

	// Text commits a free-text annotation while placing.
	Text key.Binding

	// Delete removes the selected comment.
	Delete key.Binding

	// Sidebar toggles the comment sidebar.
	Sidebar key.Binding

	// Relayout forces a margin layout recompute.
	Relayout key.Binding
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
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		ToggleInclude: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "include/exclude"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev match"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Quickmark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "quickmark"),
		),
		Annotate: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "annotate"),
		),
		Text: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "text"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete", "backspace"),
			key.WithHelp("d", "delete"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sidebar"),
		),
		Relayout: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "relayout"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.ToggleInclude, k.NextMatch, k.PrevMatch},
		{k.Annotate, k.Quickmark, k.Comment, k.Text, k.Delete},
		{k.Sidebar, k.Relayout, k.NextView, k.Back, k.Help, k.Quit},
	}
}
