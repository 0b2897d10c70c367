// Package device connects the tone engine to the system audio device through
// beep's speaker. It is the only package that links the native sound stack,
// so headless builds leave it out.
package device

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/monster-math/internal/audio"
)

// speakerOutput mixes every tone into one streamer on the speaker.
type speakerOutput struct {
	mixer *beep.Mixer
}

// Opener returns an audio.Opener for the system audio device with the given
// buffer length.
func Opener(buffer time.Duration) audio.Opener {
	return func(rate beep.SampleRate) (audio.Output, error) {
		if err := speaker.Init(rate, rate.N(buffer)); err != nil {
			return nil, fmt.Errorf("device: cannot initialize speaker: %w", err)
		}
		mixer := &beep.Mixer{}
		speaker.Play(mixer)
		return &speakerOutput{mixer: mixer}, nil
	}
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

func (o *speakerOutput) Locked(fn func()) {
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}

func (o *speakerOutput) Close() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
