package audio

import (
	"sort"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// manualScheduler fires timers only when the test advances time.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves time forward, firing due timers in order.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		due := make([]*manualTimer, 0)
		for _, t := range s.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			s.now = target
			s.mu.Unlock()
			return
		}
		sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
		next := due[0]
		next.fired = true
		s.now = next.at
		s.mu.Unlock()

		next.f()
	}
}

// Armed returns the number of timers that have neither fired nor been stopped.
func (s *manualScheduler) Armed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// recordingPlayer remembers every tone and hands out stoppable voices.
type recordingPlayer struct {
	mu     sync.Mutex
	tones  []Tone
	out    *captureOutput
	voices []*Voice
}

func newRecordingPlayer() *recordingPlayer {
	return &recordingPlayer{out: &captureOutput{}}
}

func (p *recordingPlayer) PlayTone(t Tone) *Voice {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tones = append(p.tones, t)
	v := &Voice{ctrl: &beep.Ctrl{Streamer: synthesize(t, 1, beep.SampleRate(8000))}, out: p.out}
	p.voices = append(p.voices, v)
	return v
}

func (p *recordingPlayer) Tones() []Tone {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Tone(nil), p.tones...)
}

func (p *recordingPlayer) lastVoice() *Voice {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.voices) == 0 {
		return nil
	}
	return p.voices[len(p.voices)-1]
}

// captureOutput records streamers instead of playing them.
type captureOutput struct {
	mu       sync.Mutex
	played   []beep.Streamer
	closed   bool
	lockCall int
}

func (o *captureOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.played = append(o.played, s)
}

func (o *captureOutput) Locked(fn func()) {
	o.mu.Lock()
	o.lockCall++
	o.mu.Unlock()
	fn()
}

func (o *captureOutput) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
}
