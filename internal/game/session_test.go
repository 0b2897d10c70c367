package game

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/vovakirdan/monster-math/internal/audio"
	"github.com/vovakirdan/monster-math/internal/config"
	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/problem"
)

func TestCountdownThenFirstSpawn(t *testing.T) {
	r := newRig(t, config.DefaultConfig())

	if !r.s.SelectLevel(1) {
		t.Fatal("SelectLevel(1) refused")
	}
	if r.sounds.stops != 1 {
		t.Errorf("selecting a level should stop the melody, stops = %d", r.sounds.stops)
	}

	var seen []int
	for i := 0; i < 1000 && r.s.State() == StateCountdown; i++ {
		c := r.s.Snapshot().Countdown
		if len(seen) == 0 || seen[len(seen)-1] != c {
			seen = append(seen, c)
		}
		r.s.Step()
	}
	if len(seen) != 3 || seen[0] != 3 || seen[1] != 2 || seen[2] != 1 {
		t.Errorf("countdown values = %v, expected [3 2 1]", seen)
	}
	if r.s.State() != StateRunning {
		t.Fatalf("state = %v, expected Running", r.s.State())
	}
	if n := len(r.s.Snapshot().Entities); n != 0 {
		t.Errorf("no monster should exist before the first running tick, got %d", n)
	}

	r.s.Step()
	snap := r.s.Snapshot()
	if len(snap.Entities) != 1 {
		t.Fatalf("first running tick spawned %d monsters, expected 1", len(snap.Entities))
	}
	if snap.Entities[0].Y <= config.DefaultConfig().Playfield.SpawnY {
		t.Error("the new monster should already have moved this tick")
	}
}

// Scenario: pick tier 1, wait out the countdown, answer the first monster.
func TestShootFirstMonster(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)

	e := r.stepUntilEntity(t)
	answer := r.s.entities[0].Problem.Answer
	if !problem.TierRange(1).Contains(answer) {
		t.Errorf("answer %d outside tier 1 range", answer)
	}
	sprite := r.s.entities[0].Sprite

	if !r.s.Input(strconv.Itoa(answer)) {
		t.Fatal("correct answer was not accepted")
	}

	snap := r.s.Snapshot()
	if len(snap.Entities) != 0 {
		t.Errorf("monster %d should be removed", e.ID)
	}
	if snap.Score != 10 {
		t.Errorf("score = %d, expected 10", snap.Score)
	}
	if !sprite.Released() {
		t.Error("sprite should be released")
	}
	if len(snap.Projectiles) != 1 {
		t.Errorf("projectiles = %d, expected 1", len(snap.Projectiles))
	}
	if r.sounds.count(audio.EffectShoot) != 1 {
		t.Error("shoot cue should play once")
	}
}

func TestProjectileLandsThenImpactFades(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	r.placeMonster(7, 300, 200)
	r.s.Input("7")

	from := r.s.projectiles[0].From
	if from.X != 400 || from.Y != 600 {
		t.Errorf("launch point = %+v, expected (400, 600)", from)
	}
	to := r.s.projectiles[0].To
	if to.X != 350 || to.Y != 200 {
		t.Errorf("target = %+v, expected (350, 200)", to)
	}

	landed := false
	for i := 0; i < 20; i++ {
		r.s.Step()
		if len(r.s.projectiles) == 0 {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("projectile did not land within 200ms of ticks")
	}
	if len(r.s.impacts) != 1 || r.s.impacts[0].At != to {
		t.Errorf("expected one impact at the target, got %+v", r.s.impacts)
	}
	if r.sounds.count(audio.EffectHit) != 1 {
		t.Error("hit cue should play on arrival")
	}

	for i := 0; i < 30 && len(r.s.impacts) > 0; i++ {
		r.s.Step()
	}
	if len(r.s.impacts) != 0 {
		t.Error("impact should expire after 300ms")
	}
}

func TestInputIgnoresNonNumbers(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	r.placeMonster(7, 300, 0)

	for _, in := range []string{"", "abc", "3.5", "7a", "-"} {
		if r.s.Input(in) {
			t.Errorf("Input(%q) should not match", in)
		}
	}
	if r.s.Input("8") {
		t.Error("a wrong answer should not match")
	}
	if len(r.s.entities) != 1 || r.s.score != 0 {
		t.Error("no-match input must not change the session")
	}
	if !r.s.Input(" 7 ") {
		t.Error("surrounding spaces should be trimmed")
	}
}

func TestInputResolvesFirstDuplicate(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	first := r.placeMonster(9, 100, 0)
	second := r.placeMonster(9, 400, 0)

	r.s.Input("9")

	if len(r.s.entities) != 1 || r.s.entities[0].Sprite != second {
		t.Fatal("the first monster in scan order should be removed")
	}
	if !first.Released() || second.Released() {
		t.Error("only the removed monster's sprite should be released")
	}
}

func TestInputOnlyWhileRunning(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	if r.s.Input("5") {
		t.Error("input on the start screen should be ignored")
	}

	r.startRunning(t, 1)
	r.placeMonster(5, 300, 0)
	r.s.TogglePause()
	if r.s.Input("5") {
		t.Error("input while paused should be ignored")
	}
}

func TestMatchForcesNextSpawn(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	r.stepUntilEntity(t)
	r.s.Step()
	if len(r.s.entities) != 1 {
		t.Fatalf("expected a single monster, got %d", len(r.s.entities))
	}

	r.s.Input(strconv.Itoa(r.s.entities[0].Problem.Answer))
	r.s.Step()
	if len(r.s.entities) != 1 {
		t.Errorf("a match should make the next tick spawn, have %d monsters", len(r.s.entities))
	}
}

func TestScoreAndTighteningFloor(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	floor := r.s.tier.SpawnFloor()

	prev := 0
	for i := 0; i < 60; i++ {
		r.stepUntilEntity(t)
		if !r.s.Input(strconv.Itoa(r.s.entities[0].Problem.Answer)) {
			t.Fatalf("match %d failed", i)
		}
		snap := r.s.Snapshot()
		if snap.Score != prev+10 {
			t.Fatalf("score went from %d to %d", prev, snap.Score)
		}
		prev = snap.Score
		if snap.Interval < floor {
			t.Fatalf("interval %v below floor %v at score %d", snap.Interval, floor, snap.Score)
		}
		if snap.Score == 50 && snap.Interval != r.s.tier.SpawnInterval()-r.s.cfg.Scoring.TightenStep() {
			t.Errorf("interval at 50 = %v, expected one step tighter", snap.Interval)
		}
	}
	if r.s.interval != floor {
		t.Errorf("interval after 60 matches = %v, expected floor %v", r.s.interval, floor)
	}
}

func TestSimultaneousCrossingEndsOnce(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	boundary := r.s.cfg.Playfield.LossBoundary()
	r.placeMonster(4, 100, boundary-0.1)
	r.placeMonster(6, 400, boundary-0.1)

	r.s.Step()
	if r.s.State() != StateEnded || r.s.Snapshot().Outcome != OutcomeDefeated {
		t.Fatalf("state = %v outcome = %v, expected Ended/DEFEATED", r.s.State(), r.s.Snapshot().Outcome)
	}
	for i := 0; i < 10; i++ {
		r.s.Step()
	}
	if len(r.results) != 1 {
		t.Errorf("recorded %d results, expected 1", len(r.results))
	}
	if r.sounds.count(audio.EffectGameOver) != 1 {
		t.Errorf("game over cue played %d times, expected 1", r.sounds.count(audio.EffectGameOver))
	}
}

// Scenario: tier 3 with no answers until a monster falls through.
func TestUnansweredMonsterDefeats(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 3)

	for i := 0; i < 5000 && r.s.State() == StateRunning; i++ {
		r.s.Step()
	}
	snap := r.s.Snapshot()
	if snap.State != StateEnded || snap.Outcome != OutcomeDefeated {
		t.Fatalf("state = %v outcome = %v, expected Ended/DEFEATED", snap.State, snap.Outcome)
	}
	if r.sounds.stops != 2 {
		t.Errorf("melody stops = %d, expected 2 (level select and end)", r.sounds.stops)
	}

	r.s.Step()
	after := r.s.Snapshot()
	if after.Elapsed != snap.Elapsed {
		t.Error("elapsed time must not advance after the end")
	}
	for i := range after.Entities {
		if after.Entities[i].Y != snap.Entities[i].Y {
			t.Error("monsters must not move after the end")
		}
	}
	if len(r.results) != 1 || r.results[0].Tier != 3 || r.results[0].Outcome != OutcomeDefeated {
		t.Errorf("recorded results = %+v", r.results)
	}
}

// Scenario: pause freezes the field and resume continues without a burst.
func TestPauseFreezesAndResumesSmoothly(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	r.stepUntilEntity(t)
	for i := 0; i < 30; i++ {
		r.s.Step()
	}

	r.s.TogglePause()
	if r.s.State() != StatePaused || r.sounds.suspends != 1 {
		t.Fatal("pause should suspend audio")
	}
	frozen := r.s.Snapshot()
	for i := 0; i < 600; i++ {
		r.s.Step()
	}
	still := r.s.Snapshot()
	if still.Elapsed != frozen.Elapsed {
		t.Errorf("elapsed moved while paused: %v -> %v", frozen.Elapsed, still.Elapsed)
	}
	if still.Entities[0].Y != frozen.Entities[0].Y {
		t.Error("monsters moved while paused")
	}

	r.s.TogglePause()
	if r.s.State() != StateRunning || r.sounds.resumes != 1 {
		t.Fatal("resume should restart audio")
	}
	r.s.Step()
	resumed := r.s.Snapshot()
	if resumed.Elapsed != frozen.Elapsed+r.s.quantum {
		t.Errorf("elapsed after resume = %v, expected one quantum more than %v", resumed.Elapsed, frozen.Elapsed)
	}
	if len(resumed.Entities) != len(frozen.Entities) {
		t.Errorf("resume spawned a backlog: %d -> %d monsters", len(frozen.Entities), len(resumed.Entities))
	}
	if dy := resumed.Entities[0].Y - frozen.Entities[0].Y; dy <= 0 || dy > 1 {
		t.Errorf("monster moved %v on the first tick after resume", dy)
	}
}

func TestTimeLimitEndsSession(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tiers[0].TimeLimitSec = 1
	r := newRig(t, cfg)
	r.startRunning(t, 1)

	if rem := r.s.Snapshot().Remaining; rem != 1e9 {
		t.Errorf("remaining at start = %v, expected 1s", rem)
	}
	for i := 0; i < 200 && r.s.State() == StateRunning; i++ {
		r.s.Step()
	}
	snap := r.s.Snapshot()
	if snap.Outcome != OutcomeTimeUp {
		t.Fatalf("outcome = %v, expected TIME UP", snap.Outcome)
	}
	if snap.Remaining != 0 {
		t.Errorf("remaining after time up = %v", snap.Remaining)
	}
	if r.sounds.count(audio.EffectTimeExpired) != 1 || r.sounds.count(audio.EffectGameOver) != 0 {
		t.Error("time up should play the time expired cue instead of game over")
	}
}

func TestHighScorePersistence(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		score  int
		want   string
	}{
		{"lower score keeps record", "40", 35, "40"},
		{"higher score replaces record", "40", 55, "55"},
		{"equal score keeps record", "40", 40, "40"},
		{"empty store", "", 20, "20"},
		{"garbage reads as zero", "lots", 10, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, config.DefaultConfig())
			if tt.stored != "" {
				r.kv[HighScoreKey] = tt.stored
			}
			r.startRunning(t, 1)
			r.s.score = tt.score
			r.placeMonster(3, 100, r.s.cfg.Playfield.LossBoundary())
			r.s.Step()

			if got := r.kv[HighScoreKey]; got != tt.want {
				t.Errorf("stored = %q, expected %q", got, tt.want)
			}
			if hs := r.s.Snapshot().HighScore; strconv.Itoa(hs) != tt.want {
				t.Errorf("HighScore = %d, expected %s", hs, tt.want)
			}
		})
	}
}

func TestConcurrentEndsKeepHigherScore(t *testing.T) {
	kv := &hookKV{memKV: memKV{HighScoreKey: "40"}}
	newPlayer := func(seed int64) *Session {
		s := NewSession(Options{
			Config:  config.DefaultConfig(),
			Runtime: core.RuntimeConfig{TickRate: 60, Seed: seed},
			Scores:  kv,
		})
		s.SelectLevel(1)
		for i := 0; i < 1000 && s.State() == StateCountdown; i++ {
			s.Step()
		}
		return s
	}
	lose := func(s *Session, score int) {
		s.score = score
		s.entities = append(s.entities, Entity{ID: 999, Pos: core.Vec{Y: 1000}, Sprite: newSprite(999)})
		s.Step()
	}

	a, b := newPlayer(1), newPlayer(2)
	// b finishes with 90 while a is in the middle of saving 60.
	kv.before = func() { lose(b, 90) }
	lose(a, 60)

	if a.State() != StateEnded || b.State() != StateEnded {
		t.Fatalf("states = %v, %v, expected both Ended", a.State(), b.State())
	}
	if got := kv.memKV[HighScoreKey]; got != "90" {
		t.Errorf("stored high score = %q, expected 90", got)
	}
	if a.Snapshot().HighScore != 90 || b.Snapshot().HighScore != 90 {
		t.Errorf("HighScore = %d, %d, expected 90 for both", a.Snapshot().HighScore, b.Snapshot().HighScore)
	}
}

func TestHighScoreReadAtBoot(t *testing.T) {
	kv := memKV{HighScoreKey: "120"}
	s := NewSession(Options{Config: config.DefaultConfig(), Scores: kv})
	if hs := s.Snapshot().HighScore; hs != 120 {
		t.Errorf("HighScore = %d, expected 120", hs)
	}
}

func TestBrokenStoreDegrades(t *testing.T) {
	var errs []error
	s := NewSession(Options{
		Config:  config.DefaultConfig(),
		Runtime: core.RuntimeConfig{TickRate: 60, Seed: 1},
		Scores:  brokenKV{},
		OnError: func(err error) { errs = append(errs, err) },
	})
	if s.Snapshot().HighScore != 0 {
		t.Error("unreadable store should read as zero")
	}

	s.SelectLevel(1)
	for i := 0; i < 1000 && s.State() == StateCountdown; i++ {
		s.Step()
	}
	s.score = 30
	s.entities = append(s.entities, Entity{ID: 99, Pos: core.Vec{Y: 1000}, Sprite: newSprite(99)})
	s.Step()

	if s.State() != StateEnded {
		t.Fatalf("state = %v, expected Ended", s.State())
	}
	if len(errs) < 2 {
		t.Errorf("store failures should be reported, got %v", errs)
	}
}

func TestAcknowledgeReturnsToStart(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 2)
	r.stepUntilEntity(t)
	sprite := r.s.entities[0].Sprite
	r.placeMonster(11, 100, r.s.cfg.Playfield.LossBoundary())
	r.s.Step()
	if r.s.State() != StateEnded {
		t.Fatal("expected the level to end")
	}

	r.s.Acknowledge()
	snap := r.s.Snapshot()
	if snap.State != StateIdle || snap.Outcome != OutcomeNone {
		t.Errorf("state = %v outcome = %v after acknowledge", snap.State, snap.Outcome)
	}
	if len(snap.Entities) != 0 || len(snap.Projectiles) != 0 {
		t.Error("the field should be cleared")
	}
	if !sprite.Released() {
		t.Error("sprites should be released on return to the start screen")
	}
	if m := r.sounds.melodies; len(m) != 2 || m[1] != audio.MenuTier {
		t.Errorf("melodies = %v, expected the menu melody again", m)
	}

	if !r.s.SelectLevel(1) {
		t.Error("a new level should start from the start screen")
	}
}

func TestAcknowledgeFromPauseAbandons(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	r.s.Acknowledge()
	if r.s.State() != StateRunning {
		t.Fatal("acknowledge while running should be ignored")
	}

	r.s.TogglePause()
	r.s.Acknowledge()
	if r.s.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", r.s.State())
	}
	if len(r.results) != 0 {
		t.Error("an abandoned level should not be recorded")
	}
}

func TestSelectLevelRules(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	if r.s.SelectLevel(7) {
		t.Error("unknown tier should be refused")
	}
	r.startRunning(t, 1)
	if r.s.SelectLevel(2) {
		t.Error("a level cannot be selected mid-game")
	}
}

func TestCloseStopsEverything(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	sp := r.placeMonster(5, 300, 0)

	r.s.Close()
	r.s.Close()
	if r.sounds.closes != 1 {
		t.Errorf("sounds closed %d times, expected 1", r.sounds.closes)
	}
	if !sp.Released() {
		t.Error("Close should release sprites")
	}

	before := r.s.Snapshot()
	r.s.Step()
	r.s.TogglePause()
	if r.s.Input("5") || r.s.SelectLevel(1) {
		t.Error("a closed session accepts nothing")
	}
	if after := r.s.Snapshot(); after.Elapsed != before.Elapsed || after.State != before.State {
		t.Error("a closed session never ticks")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []EntityView {
		r := newRig(t, config.DefaultConfig())
		r.startRunning(t, 2)
		for i := 0; i < 800; i++ {
			r.s.Step()
		}
		return r.s.Snapshot().Entities
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in monster count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("monster %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRenderProjectsPlayfield(t *testing.T) {
	r := newRig(t, config.DefaultConfig())
	r.startRunning(t, 1)
	r.placeMonster(7, 350, 300)

	dst := core.NewScreen(80, 24)
	r.s.Render(dst)

	glyph := r.s.entities[0].Sprite.Glyph
	if !strings.Contains(dst.Row(12), glyph) {
		t.Errorf("row 12 = %q, expected glyph %q", dst.Row(12), glyph)
	}
	if !strings.Contains(dst.Row(13), "1 + 6") {
		t.Errorf("row 13 = %q, expected the problem text", dst.Row(13))
	}
	if !strings.ContainsRune(dst.Row(21), BoundaryChar) {
		t.Error("loss boundary should be drawn")
	}
	if dst.Get(40, 23) != LauncherChar {
		t.Error("launcher should sit at the bottom center")
	}
}

func TestFallSpeedFollowsTickRate(t *testing.T) {
	fall := func(rate int) float64 {
		s := NewSession(Options{
			Config:  config.DefaultConfig(),
			Runtime: core.RuntimeConfig{TickRate: rate, Seed: 7},
		})
		s.SelectLevel(1)
		for i := 0; i < 1000 && s.State() == StateCountdown; i++ {
			s.Step()
		}
		s.entities = append(s.entities, Entity{ID: 500, Pos: core.Vec{X: 100}, Sprite: newSprite(500)})
		s.Step()
		for _, e := range s.entities {
			if e.ID == 500 {
				return e.Pos.Y
			}
		}
		t.Fatalf("monster gone after one tick at %d Hz", rate)
		return 0
	}

	at60, at30 := fall(60), fall(30)
	if math.Abs(at60-0.5) > 1e-6 {
		t.Errorf("fall per tick at 60 Hz = %f, expected the configured 0.5", at60)
	}
	if math.Abs(at30-2*at60) > 1e-6 {
		t.Errorf("fall per tick at 30 Hz = %f, expected twice %f", at30, at60)
	}
}
