package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/monster-math/internal/config"
)

// Player plays tones. ToneEngine implements it; tests substitute recorders.
type Player interface {
	PlayTone(t Tone) *Voice
}

// Voice is a handle to a sounding tone. A nil Voice is valid and inert.
type Voice struct {
	ctrl *beep.Ctrl
	out  Output
	once sync.Once
}

// Stop silences the tone immediately. Safe to call more than once.
func (v *Voice) Stop() {
	if v == nil || v.ctrl == nil {
		return
	}
	v.once.Do(func() {
		v.out.Locked(func() {
			v.ctrl.Streamer = nil
		})
	})
}

// ToneEngine synthesizes tones on demand.
// Until Init succeeds every PlayTone is a no-op.
type ToneEngine struct {
	mu      sync.Mutex
	cfg     config.AudioConfig
	rate    beep.SampleRate
	open    Opener
	out     Output
	tried   bool
	initErr error
	muted   bool
}

// NewToneEngine creates an engine that will open its output with open on the
// first Init call.
func NewToneEngine(cfg config.AudioConfig, open Opener) *ToneEngine {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &ToneEngine{
		cfg:  cfg,
		rate: beep.SampleRate(rate),
		open: open,
	}
}

// Init opens the output. It is idempotent: only the first call does work and
// later calls return the first result.
func (e *ToneEngine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tried {
		return e.initErr
	}
	e.tried = true

	if !e.cfg.Enabled {
		e.initErr = ErrDisabled
		return e.initErr
	}
	if e.open == nil {
		e.initErr = ErrNotInitialized
		return e.initErr
	}

	out, err := e.open(e.rate)
	if err != nil {
		e.initErr = err
		return err
	}
	e.out = out
	return nil
}

// Ready reports whether tones will be heard.
func (e *ToneEngine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.out != nil
}

// SetMuted mutes or unmutes new tones.
func (e *ToneEngine) SetMuted(muted bool) {
	e.mu.Lock()
	e.muted = muted
	e.mu.Unlock()
}

// Muted reports the mute state.
func (e *ToneEngine) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// PlayTone starts t immediately and returns its voice.
// Returns nil when the engine is not initialized, muted, or t is inaudible.
func (e *ToneEngine) PlayTone(t Tone) *Voice {
	e.mu.Lock()
	out, muted := e.out, e.muted
	master := e.cfg.MasterVolume
	e.mu.Unlock()

	if out == nil || muted || t.Freq <= 0 || t.Duration <= 0 || t.Volume <= 0 {
		return nil
	}

	ctrl := &beep.Ctrl{Streamer: synthesize(t, master, e.rate)}
	out.Play(ctrl)
	return &Voice{ctrl: ctrl, out: out}
}

// Close releases the output. The engine stays silent afterwards.
func (e *ToneEngine) Close() {
	e.mu.Lock()
	out := e.out
	e.out = nil
	e.mu.Unlock()

	if out != nil {
		out.Close()
	}
}
