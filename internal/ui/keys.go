package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Board actions
	MoveBacklog    key.Binding
	MoveInProgress key.Binding
	MoveDone       key.Binding
	ReorderUp      key.Binding
	ReorderDown    key.Binding
	Remove         key.Binding

	// Search
	Search   key.Binding
	Confirm  key.Binding
	NextPage key.Binding
	PrevPage key.Binding

	// Modal answers
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Switch list/search"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		MoveBacklog: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Move to backlog"),
		),
		MoveInProgress: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Move to in progress"),
		),
		MoveDone: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Move to done"),
		),
		ReorderUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "Shift up within section"),
		),
		ReorderDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "Shift down within section"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove book"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search catalog"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search / add result"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next result page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Previous result page"),
		),

		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "No"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Tab, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Up, k.Down, k.Top, k.Bottom},
		{k.MoveBacklog, k.MoveInProgress, k.MoveDone, k.ReorderUp, k.ReorderDown, k.Remove},
		{k.Search, k.Confirm, k.NextPage, k.PrevPage},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
