package audio

import "github.com/gopxl/beep"

// Output receives synthesized streamers. Overlapping streamers mix.
type Output interface {
	// Play starts s immediately.
	Play(s beep.Streamer)
	// Locked runs fn while the output is not pulling samples, so fn may
	// mutate streamers that are already playing.
	Locked(fn func())
	// Close releases the device.
	Close()
}

// Opener opens an Output. It is called at most once per ToneEngine. The
// system device opener lives in package device so that importing audio
// never links the native sound stack.
type Opener func(rate beep.SampleRate) (Output, error)
