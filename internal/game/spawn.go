package game

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/monster-math/internal/config"
)

// Placement holds the parameters of the spawn placement search.
type Placement struct {
	EdgeMargin float64 // Horizontal padding on both sides
	NearTop    float64 // Only entities with y below this block a spot
	Attempts   int     // Draws before overlap is accepted
}

// DefaultPlacement matches the default playfield.
var DefaultPlacement = Placement{
	EdgeMargin: 10,
	NearTop:    150,
	Attempts:   10,
}

// PlacementFrom builds the placement parameters of a playfield.
func PlacementFrom(pf config.PlayfieldConfig) Placement {
	p := Placement{
		EdgeMargin: pf.EdgeMargin,
		NearTop:    pf.NearTop,
		Attempts:   pf.PlacementAttempts,
	}
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	return p
}

// SpawnX chooses a horizontal position with the default placement.
func SpawnX(rng *rand.Rand, entities []Entity, screenWidth, entityWidth float64) (x float64, attempts int, overlapped bool) {
	return DefaultPlacement.SpawnX(rng, entities, screenWidth, entityWidth)
}

// SpawnX draws x uniformly from [EdgeMargin, screenWidth-entityWidth-EdgeMargin]
// until it finds a spot at least entityWidth away from every entity still near
// the top. After Attempts failed draws the last one is accepted and
// overlapped is true. A field too narrow for any draw returns EdgeMargin.
func (p Placement) SpawnX(rng *rand.Rand, entities []Entity, screenWidth, entityWidth float64) (x float64, attempts int, overlapped bool) {
	lo := p.EdgeMargin
	hi := screenWidth - entityWidth - p.EdgeMargin
	if hi < lo {
		return lo, 0, false
	}

	for attempts < p.Attempts {
		attempts++
		x = lo + rng.Float64()*(hi-lo)
		if p.clear(x, entities, entityWidth) {
			return x, attempts, false
		}
	}
	return x, attempts, true
}

func (p Placement) clear(x float64, entities []Entity, entityWidth float64) bool {
	for _, e := range entities {
		if e.Pos.Y < p.NearTop && math.Abs(e.Pos.X-x) < entityWidth {
			return false
		}
	}
	return true
}
