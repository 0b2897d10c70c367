package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/game"
)

// KeyMap defines the game's key bindings. Digits typed while a level runs
// go to the answer field and are not bound here.
type KeyMap struct {
	Tier1      key.Binding
	Tier2      key.Binding
	Tier3      key.Binding
	Pause      key.Binding
	Menu       key.Binding
	Abandon    key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tier1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "easy"),
		),
		Tier2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "medium"),
		),
		Tier3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "hard"),
		),
		Pause: key.NewBinding(
			key.WithKeys("esc", "ctrl+p"),
			key.WithHelp("esc", "pause"),
		),
		Menu: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "menu"),
		),
		Abandon: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "quit level"),
		),
		Mute: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "sound"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// forState enables the bindings that mean something in state s.
func (k KeyMap) forState(s game.State) KeyMap {
	idle := s == game.StateIdle
	k.Tier1.SetEnabled(idle)
	k.Tier2.SetEnabled(idle)
	k.Tier3.SetEnabled(idle)
	k.Pause.SetEnabled(s == game.StateRunning || s == game.StatePaused)
	k.Menu.SetEnabled(s == game.StateEnded)
	k.Abandon.SetEnabled(s == game.StatePaused)
	k.Quit.SetEnabled(idle || s == game.StateEnded)
	return k
}

// Action translates a key to an action in state s. Keys that are not
// actions in s map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg, s game.State) core.Action {
	k = k.forState(s)
	switch {
	case key.Matches(msg, k.ForceQuit), key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Tier1):
		return core.ActionTier1
	case key.Matches(msg, k.Tier2):
		return core.ActionTier2
	case key.Matches(msg, k.Tier3):
		return core.ActionTier3
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Menu), key.Matches(msg, k.Abandon):
		return core.ActionMenu
	case key.Matches(msg, k.Mute):
		return core.ActionMute
	}
	return core.ActionNone
}

// stateHelp is a help.KeyMap showing only the bindings live in one state.
type stateHelp struct {
	k KeyMap
}

// ShortHelp returns key bindings for the short help view.
func (h stateHelp) ShortHelp() []key.Binding {
	k := h.k
	return []key.Binding{k.Tier1, k.Tier2, k.Tier3, k.Pause, k.Menu, k.Abandon, k.Mute, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (h stateHelp) FullHelp() [][]key.Binding {
	k := h.k
	return [][]key.Binding{
		{k.Tier1, k.Tier2, k.Tier3},
		{k.Pause, k.Menu, k.Abandon},
		{k.Mute, k.Screenshot, k.Quit, k.ForceQuit},
	}
}
