package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameroom/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Confirm    key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Help       key.Binding
	Screenshot key.Binding
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fire/flap"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start/select"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.Confirm, k.Restart, k.Back, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fire, k.Confirm, k.Restart},
		{k.Back, k.Quit, k.Screenshot, k.Help},
	}
}

// Action translates a key message to a gameplay action. Keys that are not
// gameplay keys map to core.ActionNone.
func (k GameKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// MenuKeyMap defines the game picker bindings.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Difficulty key.Binding
	Select     key.Binding
	Scores     key.Binding
	Quit       key.Binding
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "difficulty"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Difficulty, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
