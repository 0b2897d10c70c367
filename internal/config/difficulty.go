package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTier is returned when a tier number has no configuration.
var ErrInvalidTier = errors.New("config: invalid tier")

// Tier numbers.
const (
	MinTier = 1
	MaxTier = 3
)

// Tier returns the configuration for tier n.
func (c MonsterConfig) Tier(n int) (TierConfig, error) {
	for _, t := range c.Tiers {
		if t.Tier == n {
			return t, nil
		}
	}
	return TierConfig{}, fmt.Errorf("%w: %d", ErrInvalidTier, n)
}

// ScoreSpeedBonus returns the extra per-tick fall speed earned by score.
func (s ScoringConfig) ScoreSpeedBonus(score int) float64 {
	if s.ScoreSpeedDivisor <= 0 {
		return 0
	}
	return float64(score) / s.ScoreSpeedDivisor
}

// ShouldTighten reports whether reaching score tightens the spawn interval.
func (s ScoringConfig) ShouldTighten(score int) bool {
	return s.TightenEvery > 0 && score > 0 && score%s.TightenEvery == 0
}

// TightenStep returns the spawn interval decrement.
func (s ScoringConfig) TightenStep() time.Duration {
	return time.Duration(s.TightenStepMS) * time.Millisecond
}

// ProjectileFlight returns how long a projectile travels.
func (s ScoringConfig) ProjectileFlight() time.Duration {
	return time.Duration(s.ProjectileFlightMS) * time.Millisecond
}

// ImpactDuration returns how long an impact stays on screen.
func (s ScoringConfig) ImpactDuration() time.Duration {
	return time.Duration(s.ImpactMS) * time.Millisecond
}

// TightenInterval decreases the spawn interval by step, never below floor.
func TightenInterval(current, step, floor time.Duration) time.Duration {
	next := current - step
	if next < floor {
		return floor
	}
	return next
}
