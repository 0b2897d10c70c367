// Package problem generates the addition problems carried by monsters.
package problem

import (
	"fmt"
	"math/rand"
)

// Problem is an immutable addition problem.
type Problem struct {
	A, B   int
	Answer int
}

// Text returns the expression shown on the monster.
func (p Problem) Text() string {
	return fmt.Sprintf("%d + %d", p.A, p.B)
}

// Range is an inclusive answer range.
type Range struct {
	Min, Max int
}

// Valid reports whether the range can produce problems with two positive addends.
func (r Range) Valid() bool {
	return r.Min >= 2 && r.Max >= r.Min
}

// Contains reports whether n lies within the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// tierRanges are the built-in answer ranges, indexed by tier.
var tierRanges = [...]Range{
	1: {Min: 2, Max: 20},
	2: {Min: 10, Max: 50},
	3: {Min: 20, Max: 100},
}

// TierRange returns the built-in answer range for a tier.
// Tiers outside 1..3 clamp to the nearest defined tier.
func TierRange(tier int) Range {
	if tier < 1 {
		tier = 1
	}
	if tier >= len(tierRanges) {
		tier = len(tierRanges) - 1
	}
	return tierRanges[tier]
}

// Generate draws a problem for the given tier.
func Generate(rng *rand.Rand, tier int) Problem {
	return GenerateIn(rng, TierRange(tier))
}

// GenerateIn draws a problem whose answer lies in r. The answer is uniform in
// the range and the first addend uniform in [1, answer-1], so both addends
// are at least 1. An invalid range falls back to the tier 1 range.
func GenerateIn(rng *rand.Rand, r Range) Problem {
	if !r.Valid() {
		r = TierRange(1)
	}
	answer := r.Min + rng.Intn(r.Max-r.Min+1)
	a := 1 + rng.Intn(answer-1)
	return Problem{A: a, B: answer - a, Answer: answer}
}
