package game

import "github.com/vovakirdan/monster-math/internal/audio"

// Sounds is the audio the session drives. *audio.Director implements it.
type Sounds interface {
	PlayEffect(kind audio.EffectKind)
	PlayMelody(tier int)
	StopMelody()
	Suspend()
	Resume()
	Close()
}

// silence is used when a session has no audio.
type silence struct{}

func (silence) PlayEffect(audio.EffectKind) {}
func (silence) PlayMelody(int)              {}
func (silence) StopMelody()                 {}
func (silence) Suspend()                    {}
func (silence) Resume()                     {}
func (silence) Close()                      {}
