package game

import (
	"time"

	"github.com/vovakirdan/monster-math/internal/core"
)

// State is the session state.
type State int

const (
	StateIdle State = iota
	StateCountdown
	StateRunning
	StatePaused
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateCountdown:
		return "Countdown"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Active reports whether a level attempt is in progress.
func (s State) Active() bool {
	return s == StateCountdown || s == StateRunning || s == StatePaused
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDefeated
	OutcomeTimeUp
)

// String returns the outcome as shown on the game over screen.
func (o Outcome) String() string {
	switch o {
	case OutcomeDefeated:
		return "DEFEATED"
	case OutcomeTimeUp:
		return "TIME UP"
	default:
		return ""
	}
}

// EntityView is the renderable data of one monster.
type EntityView struct {
	ID    EntityID
	X, Y  float64
	Text  string
	Glyph string
	Color core.Color
}

// ImpactView is the renderable data of one impact.
type ImpactView struct {
	Pos      core.Vec
	Progress float64
}

// Snapshot is an observable copy of the session.
type Snapshot struct {
	State     State
	Outcome   Outcome
	Countdown int
	Tier      int
	Score     int
	HighScore int
	Elapsed   time.Duration
	Remaining time.Duration // Zero when the tier has no time limit
	Interval  time.Duration

	Width, Height float64
	EntityWidth   float64
	LossBoundary  float64

	Entities    []EntityView
	Projectiles []core.Vec
	Impacts     []ImpactView
}
