package game

import (
	"errors"
	"strconv"
	"testing"

	"github.com/vovakirdan/monster-math/internal/audio"
	"github.com/vovakirdan/monster-math/internal/config"
	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/problem"
)

type fakeSounds struct {
	effects  []audio.EffectKind
	melodies []int
	stops    int
	suspends int
	resumes  int
	closes   int
}

func (f *fakeSounds) PlayEffect(k audio.EffectKind) { f.effects = append(f.effects, k) }
func (f *fakeSounds) PlayMelody(tier int)           { f.melodies = append(f.melodies, tier) }
func (f *fakeSounds) StopMelody()                   { f.stops++ }
func (f *fakeSounds) Suspend()                      { f.suspends++ }
func (f *fakeSounds) Resume()                       { f.resumes++ }
func (f *fakeSounds) Close()                        { f.closes++ }

func (f *fakeSounds) count(k audio.EffectKind) int {
	n := 0
	for _, e := range f.effects {
		if e == k {
			n++
		}
	}
	return n
}

type memKV map[string]string

func (m memKV) Get(key string) (string, error) { return m[key], nil }
func (m memKV) Set(key, value string) error    { m[key] = value; return nil }

func (m memKV) RaiseInt(key string, n int) (int, error) {
	stored, _ := strconv.Atoi(m[key])
	if n > stored {
		m[key] = strconv.Itoa(n)
		return n, nil
	}
	return stored, nil
}

// hookKV calls before once, ahead of its next store access, standing in for
// another session that finishes at the same moment.
type hookKV struct {
	memKV
	before func()
}

func (h *hookKV) fire() {
	if f := h.before; f != nil {
		h.before = nil
		f()
	}
}

func (h *hookKV) Get(key string) (string, error) {
	h.fire()
	return h.memKV.Get(key)
}

func (h *hookKV) RaiseInt(key string, n int) (int, error) {
	h.fire()
	return h.memKV.RaiseInt(key, n)
}

type brokenKV struct{}

var errBroken = errors.New("store unavailable")

func (brokenKV) Get(string) (string, error) { return "", errBroken }
func (brokenKV) Set(string, string) error   { return errBroken }

func (brokenKV) RaiseInt(string, int) (int, error) { return 0, errBroken }

type testRig struct {
	s       *Session
	sounds  *fakeSounds
	kv      memKV
	results []Result
	errs    []error
}

func newRig(t *testing.T, cfg config.MonsterConfig) *testRig {
	t.Helper()
	r := &testRig{sounds: &fakeSounds{}, kv: memKV{}}
	r.s = NewSession(Options{
		Config:  cfg,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42},
		Sounds:  r.sounds,
		Scores:  r.kv,
		History: RecorderFunc(func(res Result) error {
			r.results = append(r.results, res)
			return nil
		}),
		OnError: func(err error) { r.errs = append(r.errs, err) },
	})
	return r
}

// startRunning selects tier and steps through the countdown.
func (r *testRig) startRunning(t *testing.T, tier int) {
	t.Helper()
	if !r.s.SelectLevel(tier) {
		t.Fatalf("SelectLevel(%d) refused", tier)
	}
	for i := 0; i < 1000 && r.s.State() == StateCountdown; i++ {
		r.s.Step()
	}
	if r.s.State() != StateRunning {
		t.Fatalf("state after countdown = %v, expected Running", r.s.State())
	}
}

// stepUntilEntity steps until at least one monster is live.
func (r *testRig) stepUntilEntity(t *testing.T) EntityView {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if snap := r.s.Snapshot(); len(snap.Entities) > 0 {
			return snap.Entities[0]
		}
		r.s.Step()
	}
	t.Fatal("no monster spawned")
	return EntityView{}
}

// placeMonster adds a monster directly to the field.
func (r *testRig) placeMonster(answer int, x, y float64) *Sprite {
	r.s.nextID++
	sp := newSprite(r.s.nextID)
	r.s.entities = append(r.s.entities, Entity{
		ID:      r.s.nextID,
		Problem: problem.Problem{A: 1, B: answer - 1, Answer: answer},
		Pos:     core.Vec{X: x, Y: y},
		Sprite:  sp,
	})
	return sp
}
