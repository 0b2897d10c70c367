package core

// Action represents a semantic command, abstracted from physical key presses.
// The front end maps keys to actions; typed digits travel separately as the
// current value of the answer field.
type Action int

const (
	ActionNone  Action = iota
	ActionTier1        // 1 - start tier 1 from the start screen
	ActionTier2        // 2 - start tier 2
	ActionTier3        // 3 - start tier 3
	ActionPause        // Esc, Ctrl+P - pause/resume
	ActionMenu         // Enter on the game over screen, Ctrl+X while paused
	ActionMute         // Ctrl+N - toggle sound
	ActionQuit         // Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTier1:
		return "Tier1"
	case ActionTier2:
		return "Tier2"
	case ActionTier3:
		return "Tier3"
	case ActionPause:
		return "Pause"
	case ActionMenu:
		return "Menu"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Tier returns the tier selected by a tier action, or 0.
func (a Action) Tier() int {
	switch a {
	case ActionTier1:
		return 1
	case ActionTier2:
		return 2
	case ActionTier3:
		return 3
	default:
		return 0
	}
}
