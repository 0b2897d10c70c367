package game

import (
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/monster-math/internal/audio"
	"github.com/vovakirdan/monster-math/internal/config"
	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/problem"
)

// CountdownStart is the first countdown value shown after a level is picked.
const CountdownStart = 3

// nominalRate is the tick rate fall speeds are expressed in.
const nominalRate = 60

// Options configures a Session.
type Options struct {
	Config  config.MonsterConfig
	Runtime core.RuntimeConfig
	Sounds  Sounds   // Optional
	Scores  KV       // Optional high score store
	History Recorder // Optional
	// OnError receives persistence failures. The session itself never fails.
	OnError func(err error)
}

// Session is one player's game: the level state machine, the live monsters
// and the score. It is driven by Step once per tick and by the input
// methods, all from a single goroutine.
type Session struct {
	cfg       config.MonsterConfig
	placement Placement
	quantum   time.Duration
	fallScale float64 // fall speeds are per 60 Hz frame
	rng       *rand.Rand
	sounds    Sounds
	scores    KV
	history   Recorder
	onError   func(error)

	state     State
	outcome   Outcome
	countdown int
	countAcc  time.Duration
	closed    bool

	tier      config.TierConfig
	score     int
	highScore int
	elapsed   time.Duration
	interval  time.Duration
	spawnAcc  time.Duration

	nextID      EntityID
	entities    []Entity
	projectiles []Projectile
	impacts     []Impact
}

// NewSession creates a session on the start screen and starts the idle
// melody. The high score is read once here.
func NewSession(opts Options) *Session {
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		cfg:       opts.Config,
		placement: PlacementFrom(opts.Config.Playfield),
		quantum:   opts.Runtime.FrameDuration(),
		fallScale: opts.Runtime.FrameSeconds() * nominalRate,
		rng:       rand.New(rand.NewSource(seed)),
		sounds:    opts.Sounds,
		scores:    opts.Scores,
		history:   opts.History,
		onError:   opts.OnError,
		state:     StateIdle,
	}
	if s.sounds == nil {
		s.sounds = silence{}
	}
	s.highScore = s.loadHighScore()
	s.sounds.PlayMelody(audio.MenuTier)
	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// SelectLevel starts a level attempt from the start screen. It reports
// whether the countdown started.
func (s *Session) SelectLevel(tier int) bool {
	if s.closed || s.state != StateIdle {
		return false
	}
	tc, err := s.cfg.Tier(tier)
	if err != nil {
		return false
	}

	s.sounds.StopMelody()
	s.clearField()
	s.tier = tc
	s.score = 0
	s.elapsed = 0
	s.interval = tc.SpawnInterval()
	s.spawnAcc = 0
	s.outcome = OutcomeNone
	s.countdown = CountdownStart
	s.countAcc = 0
	s.state = StateCountdown
	return true
}

// TogglePause switches between Running and Paused.
func (s *Session) TogglePause() {
	if s.closed {
		return
	}
	switch s.state {
	case StateRunning:
		s.state = StatePaused
		s.sounds.Suspend()
	case StatePaused:
		s.state = StateRunning
		// Measure the next spawn from now so no backlog fires at once.
		s.spawnAcc = 0
		s.sounds.Resume()
	}
}

// Acknowledge returns to the start screen from the game over screen, or
// abandons a paused level.
func (s *Session) Acknowledge() {
	if s.closed || (s.state != StateEnded && s.state != StatePaused) {
		return
	}
	s.clearField()
	s.state = StateIdle
	s.outcome = OutcomeNone
	s.sounds.PlayMelody(audio.MenuTier)
}

// Close tears the session down. It stops the audio, cancels pending sounds
// and releases every sprite. The session never ticks again.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.clearField()
	s.sounds.Close()
}

// Step advances the session by one tick.
func (s *Session) Step() {
	if s.closed {
		return
	}
	switch s.state {
	case StateCountdown:
		s.stepCountdown()
	case StateRunning:
		s.stepRunning()
	}
}

func (s *Session) stepCountdown() {
	s.countAcc += s.quantum
	for s.countAcc >= time.Second && s.state == StateCountdown {
		s.countAcc -= time.Second
		s.countdown--
		if s.countdown <= 0 {
			s.countdown = 0
			s.state = StateRunning
			// The first monster spawns on the first running tick.
			s.spawnAcc = s.interval
		}
	}
}

func (s *Session) stepRunning() {
	s.elapsed += s.quantum
	s.spawnAcc += s.quantum
	if s.spawnAcc > s.interval {
		s.spawn()
		s.spawnAcc = 0
	}

	speed := s.tier.FallSpeed + s.cfg.Scoring.ScoreSpeedBonus(s.score)
	speed *= s.fallScale
	for i := range s.entities {
		s.entities[i].Pos.Y += speed
	}

	s.advanceEffects()

	boundary := s.cfg.Playfield.LossBoundary()
	for _, e := range s.entities {
		if e.Pos.Y > boundary {
			s.end(OutcomeDefeated)
			return
		}
	}

	if limit := s.tier.TimeLimit(); limit > 0 && s.elapsed >= limit {
		s.end(OutcomeTimeUp)
	}
}

func (s *Session) spawn() {
	pf := s.cfg.Playfield
	x, _, _ := s.placement.SpawnX(s.rng, s.entities, pf.Width, pf.EntityWidth)
	r := problem.Range{Min: s.tier.AnswerMin, Max: s.tier.AnswerMax}
	if !r.Valid() {
		r = problem.TierRange(s.tier.Tier)
	}
	p := problem.GenerateIn(s.rng, r)

	s.nextID++
	s.entities = append(s.entities, Entity{
		ID:      s.nextID,
		Problem: p,
		Pos:     core.Vec{X: x, Y: pf.SpawnY},
		Sprite:  newSprite(s.nextID),
	})
}

func (s *Session) advanceEffects() {
	live := s.projectiles[:0]
	for _, p := range s.projectiles {
		p.Age += s.quantum
		if p.Arrived() {
			s.impacts = append(s.impacts, Impact{At: p.To, Life: s.cfg.Scoring.ImpactDuration()})
			s.sounds.PlayEffect(audio.EffectHit)
			continue
		}
		live = append(live, p)
	}
	s.projectiles = live

	impacts := s.impacts[:0]
	for _, im := range s.impacts {
		im.Age += s.quantum
		if !im.Done() {
			impacts = append(impacts, im)
		}
	}
	s.impacts = impacts
}

// Input checks the typed value against the live monsters. On a match the
// first matching monster is shot down and Input returns true, telling the
// caller to clear the field. Anything else is a no-op.
func (s *Session) Input(value string) bool {
	if s.closed || s.state != StateRunning {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return false
	}

	idx := slices.IndexFunc(s.entities, func(e Entity) bool {
		return e.Problem.Answer == n
	})
	if idx < 0 {
		return false
	}

	e := s.entities[idx]
	s.entities = slices.Delete(s.entities, idx, idx+1)
	e.Sprite.Release()

	pf := s.cfg.Playfield
	s.projectiles = append(s.projectiles, Projectile{
		From:   core.Vec{X: pf.Width / 2, Y: pf.Height},
		To:     core.Vec{X: e.Pos.X + pf.EntityWidth/2, Y: e.Pos.Y},
		Flight: s.cfg.Scoring.ProjectileFlight(),
	})
	s.sounds.PlayEffect(audio.EffectShoot)

	s.score += s.cfg.Scoring.PointsPerMatch
	s.spawnAcc = s.interval
	if s.cfg.Scoring.ShouldTighten(s.score) {
		s.interval = config.TightenInterval(s.interval, s.cfg.Scoring.TightenStep(), s.tier.SpawnFloor())
	}
	return true
}

// end finishes the running level. It runs at most once per level attempt.
func (s *Session) end(outcome Outcome) {
	if s.state != StateRunning {
		return
	}
	s.state = StateEnded
	s.outcome = outcome

	s.sounds.StopMelody()
	if outcome == OutcomeTimeUp {
		s.sounds.PlayEffect(audio.EffectTimeExpired)
	} else {
		s.sounds.PlayEffect(audio.EffectGameOver)
	}

	// Other sessions may have raised the record since boot.
	if s.score > 0 {
		best, err := raiseHighScore(s.scores, s.score)
		if err != nil {
			s.report(err)
			best = max(s.highScore, s.score)
		}
		s.highScore = best
	} else {
		s.highScore = max(s.highScore, s.loadHighScore())
	}

	if s.history != nil {
		err := s.history.Record(Result{
			Tier:     s.tier.Tier,
			Score:    s.score,
			Outcome:  outcome,
			Duration: s.elapsed,
		})
		if err != nil {
			s.report(err)
		}
	}
}

func (s *Session) loadHighScore() int {
	n, err := readHighScore(s.scores)
	if err != nil {
		s.report(err)
	}
	return n
}

func (s *Session) report(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

// clearField releases every sprite and drops all monsters and effects.
func (s *Session) clearField() {
	for i := range s.entities {
		s.entities[i].Sprite.Release()
	}
	s.entities = nil
	s.projectiles = nil
	s.impacts = nil
}

// Snapshot returns an observable copy of the session.
func (s *Session) Snapshot() Snapshot {
	pf := s.cfg.Playfield
	snap := Snapshot{
		State:        s.state,
		Outcome:      s.outcome,
		Countdown:    s.countdown,
		Tier:         s.tier.Tier,
		Score:        s.score,
		HighScore:    s.highScore,
		Elapsed:      s.elapsed,
		Interval:     s.interval,
		Width:        pf.Width,
		Height:       pf.Height,
		EntityWidth:  pf.EntityWidth,
		LossBoundary: pf.LossBoundary(),
	}
	if limit := s.tier.TimeLimit(); limit > 0 && s.state != StateIdle {
		snap.Remaining = max(limit-s.elapsed, 0)
	}

	snap.Entities = make([]EntityView, 0, len(s.entities))
	for _, e := range s.entities {
		snap.Entities = append(snap.Entities, EntityView{
			ID:    e.ID,
			X:     e.Pos.X,
			Y:     e.Pos.Y,
			Text:  e.Problem.Text(),
			Glyph: e.Sprite.Glyph,
			Color: e.Sprite.Color,
		})
	}
	for _, p := range s.projectiles {
		snap.Projectiles = append(snap.Projectiles, p.Pos())
	}
	for _, im := range s.impacts {
		snap.Impacts = append(snap.Impacts, ImpactView{
			Pos:      im.At,
			Progress: core.ClampF(float64(im.Age)/float64(max(im.Life, 1)), 0, 1),
		})
	}
	return snap
}
