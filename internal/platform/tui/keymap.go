package tui

import "github.com/charmbracelet/bubbles/key"

// BrushKeyMap defines key bindings for the brush stage.
type BrushKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Clear      key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k BrushKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Clear, k.Screenshot, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k BrushKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Clear, k.Screenshot, k.Quit},
	}
}

// DefaultBrushKeyMap returns the default key bindings for the brush stage.
func DefaultBrushKeyMap() BrushKeyMap {
	return BrushKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "nudge left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "nudge right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "nudge up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "nudge down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryKeyMap defines key bindings for the selection history screen.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextSeries key.Binding
	PrevSeries key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevSeries, k.NextSeries, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.PrevSeries, k.NextSeries},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns the default key bindings for the history screen.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextSeries: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next series"),
		),
		PrevSeries: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "prev series"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
