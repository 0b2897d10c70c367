// Package audio synthesizes every sound in the game: a tone engine built on
// beep streamers and a director that sequences effects and loops melodies.
// No audio files are used.
package audio

import (
	"errors"
	"time"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

// String returns the wave name.
func (w WaveType) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// EnvelopeShape selects how a tone's amplitude evolves.
type EnvelopeShape int

const (
	// EnvelopeDecay starts at full volume and decays exponentially to near
	// silence by the end of the tone. Used for effects.
	EnvelopeDecay EnvelopeShape = iota
	// EnvelopeHold holds full volume, then ramps linearly to zero over the
	// final tenth of the tone. Used for melody notes.
	EnvelopeHold
)

// Tone describes a single synthesized tone.
type Tone struct {
	Freq     float64 // Hz
	Wave     WaveType
	Duration time.Duration
	Volume   float64 // 0.0 to 1.0, before master volume
	Shape    EnvelopeShape
}

// EffectKind identifies a one-shot sound effect.
type EffectKind int

const (
	EffectShoot EffectKind = iota
	EffectHit
	EffectTimeExpired
	EffectGameOver
)

// String returns the effect name.
func (k EffectKind) String() string {
	switch k {
	case EffectShoot:
		return "shoot"
	case EffectHit:
		return "hit"
	case EffectTimeExpired:
		return "timeExpired"
	case EffectGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrDisabled       = errors.New("audio: disabled by configuration")
	ErrNotInitialized = errors.New("audio: engine not initialized")
)
