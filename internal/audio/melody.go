package audio

import "time"

// Rest is the frequency of a silent note.
const Rest = 0

// Note is one step of a melody. A Rest note emits nothing but still takes
// its duration.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Melody is a looping sequence of notes.
type Melody []Note

// MenuTier is the pseudo-tier of the start screen.
const MenuTier = 0

// Note frequencies (Hz).
const (
	noteC4 = 261.63
	noteD4 = 293.66
	noteE4 = 329.63
	noteF4 = 349.23
	noteG4 = 392.00
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
)

const (
	beat     = 250 * time.Millisecond
	halfBeat = beat / 2
)

// menuMelody is the start screen loop.
var menuMelody = Melody{
	{noteC4, beat}, {noteE4, beat}, {noteG4, beat}, {noteC5, beat},
	{noteB4, halfBeat}, {noteA4, halfBeat}, {noteG4, beat}, {Rest, beat},
	{noteF4, beat}, {noteA4, beat}, {noteG4, beat}, {noteE4, beat},
	{noteD4, halfBeat}, {noteE4, halfBeat}, {noteC4, beat}, {Rest, 2 * beat},
}

// DefaultMelodies returns the melody table by tier. Gameplay tiers are silent.
func DefaultMelodies() map[int]Melody {
	return map[int]Melody{
		MenuTier: menuMelody,
	}
}

// melodyVolume and melodyWave color every melody note.
const (
	melodyVolume = 0.08
	melodyWave   = WaveTriangle
)
