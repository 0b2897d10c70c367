package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// silenceFloor is the fraction of the start volume a decay envelope reaches
// at the end of the tone.
const silenceFloor = 0.001

// holdReleaseFraction is the share of a held tone spent ramping to zero.
const holdReleaseFraction = 0.1

// oscillator generates a fixed-length raw waveform in [-1, 1].
type oscillator struct {
	freq     float64
	phase    float64
	wave     WaveType
	rate     beep.SampleRate
	position int
	total    int
}

func newOscillator(freq float64, wave WaveType, samples int, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:  freq,
		wave:  wave,
		rate:  rate,
		total: samples,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSawtooth:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1.0 - 4.0*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope scales a streamer by a time-varying gain.
type envelope struct {
	streamer beep.Streamer
	shape    EnvelopeShape
	volume   float64
	position int
	total    int
}

func newEnvelope(s beep.Streamer, shape EnvelopeShape, volume float64, samples int) *envelope {
	return &envelope{
		streamer: s,
		shape:    shape,
		volume:   volume,
		total:    samples,
	}
}

// gain returns the envelope value at sample index pos.
func (e *envelope) gain(pos int) float64 {
	if e.total <= 0 || pos >= e.total {
		return 0
	}

	switch e.shape {
	case EnvelopeHold:
		// The ramp ends on exactly zero at the last sample.
		releaseStart := e.total - int(math.Round(float64(e.total)*holdReleaseFraction))
		if pos < releaseStart {
			return e.volume
		}
		span := e.total - 1 - releaseStart
		if span <= 0 {
			return 0
		}
		return e.volume * float64(e.total-1-pos) / float64(span)
	default:
		return e.volume * math.Pow(silenceFloor, float64(pos)/float64(e.total))
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// synthesize builds the streamer for a tone at the given sample rate.
func synthesize(t Tone, master float64, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(t.Duration)
	osc := newOscillator(t.Freq, t.Wave, samples, rate)
	return newEnvelope(osc, t.Shape, t.Volume*master, samples)
}
