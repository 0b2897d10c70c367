// Package game implements the Monster Math simulation: falling monsters that
// carry addition problems, the spawn policy that places them, the match
// resolver that shoots them down and the session state machine around it.
//
// Nothing here touches a terminal or an audio device. The session exposes
// plain data through Snapshot and draws into a core.Screen; sound is
// requested through the Sounds interface.
package game

import (
	"time"

	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/problem"
)

// EntityID identifies a monster. IDs increase monotonically per session.
type EntityID uint64

// monsterGlyphs are the faces monsters are drawn with.
var monsterGlyphs = []string{
	"(>_<)",
	"{o.o}",
	"[x_x]",
	"<@_@>",
	"(^o^)",
	"/o.O\\",
}

// Sprite is the visual handle owned by one entity.
type Sprite struct {
	Glyph    string
	Color    core.Color
	released bool
}

// newSprite picks a glyph and color for the entity with the given ID.
func newSprite(id EntityID) *Sprite {
	return &Sprite{
		Glyph: monsterGlyphs[int(id)%len(monsterGlyphs)],
		Color: core.MonsterPalette[int(id)%len(core.MonsterPalette)],
	}
}

// Release detaches the sprite. Releasing an already released or nil sprite
// is a no-op.
func (s *Sprite) Release() {
	if s == nil {
		return
	}
	s.released = true
}

// Released reports whether the sprite has been released.
func (s *Sprite) Released() bool {
	return s == nil || s.released
}

// Entity is a falling monster bound to one problem.
type Entity struct {
	ID      EntityID
	Problem problem.Problem
	Pos     core.Vec // Top-left corner in playfield units
	Sprite  *Sprite
}

// Projectile flies from the launch point to a destroyed monster.
type Projectile struct {
	From, To core.Vec
	Age      time.Duration
	Flight   time.Duration
}

// Progress returns the completed fraction of the flight in [0, 1].
func (p Projectile) Progress() float64 {
	if p.Flight <= 0 {
		return 1
	}
	return core.ClampF(float64(p.Age)/float64(p.Flight), 0, 1)
}

// Pos returns the projectile's current position.
func (p Projectile) Pos() core.Vec {
	return core.Lerp(p.From, p.To, p.Progress())
}

// Arrived reports whether the projectile reached its target.
func (p Projectile) Arrived() bool {
	return p.Age >= p.Flight
}

// Impact is the short-lived burst where a projectile landed.
type Impact struct {
	At   core.Vec
	Age  time.Duration
	Life time.Duration
}

// Done reports whether the impact has expired.
func (i Impact) Done() bool {
	return i.Age >= i.Life
}
