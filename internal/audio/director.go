package audio

import (
	"sync"
	"time"
)

// cue is one tone of an effect, started delay after the effect fires.
type cue struct {
	delay time.Duration
	tone  Tone
}

// effectScores maps each effect to its fixed micro-score.
var effectScores = map[EffectKind][]cue{
	EffectShoot: {
		{0, Tone{Freq: 880, Wave: WaveSquare, Duration: 100 * time.Millisecond, Volume: 0.10}},
	},
	EffectHit: {
		{0, Tone{Freq: 220, Wave: WaveSquare, Duration: 150 * time.Millisecond, Volume: 0.20}},
		{50 * time.Millisecond, Tone{Freq: 440, Wave: WaveSine, Duration: 100 * time.Millisecond, Volume: 0.15}},
	},
	EffectTimeExpired: {
		{0, Tone{Freq: 440, Wave: WaveSawtooth, Duration: 300 * time.Millisecond, Volume: 0.15}},
		{200 * time.Millisecond, Tone{Freq: 330, Wave: WaveSawtooth, Duration: 300 * time.Millisecond, Volume: 0.15}},
		{400 * time.Millisecond, Tone{Freq: 220, Wave: WaveSawtooth, Duration: 300 * time.Millisecond, Volume: 0.15}},
	},
	EffectGameOver: {
		{0, Tone{Freq: 392, Wave: WaveSawtooth, Duration: 400 * time.Millisecond, Volume: 0.20}},
		{300 * time.Millisecond, Tone{Freq: 330, Wave: WaveSawtooth, Duration: 400 * time.Millisecond, Volume: 0.20}},
		{600 * time.Millisecond, Tone{Freq: 262, Wave: WaveSawtooth, Duration: 400 * time.Millisecond, Volume: 0.20}},
	},
}

// MelodyState is a snapshot of the melody loop.
type MelodyState struct {
	Playing bool
	Tier    int
	Index   int
}

// Director plays one-shot effects and loops at most one melody.
//
// The melody is a small state machine: the current note index plus a single
// armed timer that advances it. Stopping cancels the timer, silences the
// sounding note and bumps a generation counter so a timer callback already in
// flight cannot advance a stale loop.
type Director struct {
	mu       sync.Mutex
	tones    Player
	sched    Scheduler
	melodies map[int]Melody

	playing bool
	tier    int
	index   int
	timer   Timer
	voice   *Voice
	gen     uint64

	paused        bool
	suspended     bool
	suspendedTier int

	pending map[uint64]Timer
	nextCue uint64
	closed  bool
}

// NewDirector creates a director that plays through tones and schedules with sched.
func NewDirector(tones Player, sched Scheduler, melodies map[int]Melody) *Director {
	if melodies == nil {
		melodies = DefaultMelodies()
	}
	return &Director{
		tones:    tones,
		sched:    sched,
		melodies: melodies,
		pending:  make(map[uint64]Timer),
	}
}

// PlayEffect fires an effect. Effects never cancel each other.
func (d *Director) PlayEffect(kind EffectKind) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	for _, c := range effectScores[kind] {
		if c.delay <= 0 {
			d.tones.PlayTone(c.tone)
			continue
		}
		d.scheduleCueLocked(c)
	}
}

func (d *Director) scheduleCueLocked(c cue) {
	d.nextCue++
	id := d.nextCue
	tone := c.tone
	d.pending[id] = d.sched.AfterFunc(c.delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if _, ok := d.pending[id]; !ok {
			return
		}
		delete(d.pending, id)
		if d.closed || d.paused {
			return
		}
		d.tones.PlayTone(tone)
	})
}

// PendingCues returns the number of delayed effect tones not yet played.
func (d *Director) PendingCues() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// PlayMelody stops the current melody and loops the melody of tier, if any.
func (d *Director) PlayMelody(tier int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopMelodyLocked()
	d.suspended = false
	d.paused = false
	if d.closed {
		return
	}

	m := d.melodies[tier]
	if len(m) == 0 {
		return
	}
	d.playing = true
	d.tier = tier
	d.index = 0
	d.playNoteLocked(m)
}

func (d *Director) playNoteLocked(m Melody) {
	note := m[d.index]
	d.voice = nil
	if note.Freq != Rest {
		d.voice = d.tones.PlayTone(Tone{
			Freq:     note.Freq,
			Wave:     melodyWave,
			Duration: note.Duration,
			Volume:   melodyVolume,
			Shape:    EnvelopeHold,
		})
	}

	gen := d.gen
	d.timer = d.sched.AfterFunc(note.Duration, func() {
		d.advance(gen)
	})
}

// advance moves to the next note, wrapping around.
func (d *Director) advance(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.playing || gen != d.gen || d.closed {
		return
	}
	m := d.melodies[d.tier]
	d.index = (d.index + 1) % len(m)
	d.playNoteLocked(m)
}

// StopMelody cancels the loop and silences the sounding note. Idempotent.
func (d *Director) StopMelody() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopMelodyLocked()
	d.suspended = false
}

func (d *Director) stopMelodyLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.voice.Stop()
	d.voice = nil
	d.playing = false
	d.gen++
}

// Suspend stops the melody but remembers it for Resume. Delayed effect
// tones still pending are dropped.
func (d *Director) Suspend() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.paused = true
	d.cancelCuesLocked()
	if !d.playing {
		return
	}
	d.suspendedTier = d.tier
	d.stopMelodyLocked()
	d.suspended = true
}

// Resume restarts a melody stopped by Suspend.
func (d *Director) Resume() {
	d.mu.Lock()
	d.paused = false
	suspended, tier := d.suspended, d.suspendedTier
	d.mu.Unlock()

	if suspended {
		d.PlayMelody(tier)
	}
}

// Melody returns the current melody state.
func (d *Director) Melody() MelodyState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return MelodyState{Playing: d.playing, Tier: d.tier, Index: d.index}
}

// Close stops the melody and cancels every pending effect tone.
// The director is inert afterwards.
func (d *Director) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopMelodyLocked()
	d.cancelCuesLocked()
	d.closed = true
}

func (d *Director) cancelCuesLocked() {
	for id, t := range d.pending {
		t.Stop()
		delete(d.pending, id)
	}
}
