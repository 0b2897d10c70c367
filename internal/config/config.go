// Package config provides YAML-based game configuration loading and the
// per-tier difficulty parameters for Monster Math.
package config

import "time"

// MonsterConfig contains all configuration for the game.
type MonsterConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Tiers     []TierConfig    `yaml:"tiers"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Audio     AudioConfig     `yaml:"audio"`
}

// PlayfieldConfig defines the logical playfield. All values are in playfield
// units; the terminal renderer scales them to cells.
type PlayfieldConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	EntityWidth       float64 `yaml:"entity_width"`
	SpawnY            float64 `yaml:"spawn_y"`            // Negative: above the visible area
	LossMargin        float64 `yaml:"loss_margin"`        // Loss boundary is Height - LossMargin
	NearTop           float64 `yaml:"near_top"`           // Entities above this y block placement
	EdgeMargin        float64 `yaml:"edge_margin"`        // Horizontal padding on both sides
	PlacementAttempts int     `yaml:"placement_attempts"` // Draws before overlap is accepted
}

// LossBoundary returns the y-coordinate past which an entity ends the session.
func (p PlayfieldConfig) LossBoundary() float64 {
	return p.Height - p.LossMargin
}

// TierConfig defines the parameters of one difficulty tier.
type TierConfig struct {
	Tier             int     `yaml:"tier"`
	FallSpeed        float64 `yaml:"fall_speed"`            // Units per tick
	SpawnIntervalMS  int     `yaml:"spawn_interval_ms"`     // Initial spawn interval
	MinSpawnInterval int     `yaml:"min_spawn_interval_ms"` // Floor for tightening
	AnswerMin        int     `yaml:"answer_min"`
	AnswerMax        int     `yaml:"answer_max"`
	TimeLimitSec     int     `yaml:"time_limit_sec"` // 0 = unlimited
}

// SpawnInterval returns the initial spawn interval as a duration.
func (t TierConfig) SpawnInterval() time.Duration {
	return time.Duration(t.SpawnIntervalMS) * time.Millisecond
}

// SpawnFloor returns the minimum spawn interval as a duration.
func (t TierConfig) SpawnFloor() time.Duration {
	return time.Duration(t.MinSpawnInterval) * time.Millisecond
}

// TimeLimit returns the session time limit, or 0 when unlimited.
func (t TierConfig) TimeLimit() time.Duration {
	return time.Duration(t.TimeLimitSec) * time.Second
}

// ScoringConfig defines scoring and the score-driven tightening of the pace.
type ScoringConfig struct {
	PointsPerMatch     int     `yaml:"points_per_match"`
	TightenEvery       int     `yaml:"tighten_every"`        // Tighten when score is a multiple of this
	TightenStepMS      int     `yaml:"tighten_step_ms"`      // Spawn interval decrement
	ScoreSpeedDivisor  float64 `yaml:"score_speed_divisor"`  // Extra fall speed = score / divisor
	ProjectileFlightMS int     `yaml:"projectile_flight_ms"` // Projectile travel time
	ImpactMS           int     `yaml:"impact_ms"`            // Impact effect lifetime
}

// AudioConfig controls the tone engine.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"` // 0.0 to 1.0
	SampleRate   int     `yaml:"sample_rate"`
	BufferMS     int     `yaml:"buffer_ms"`
}
