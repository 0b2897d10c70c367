package config

import (
	_ "embed"
)

//go:embed defaults/monsters.yaml
var defaultMonstersYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() MonsterConfig {
	return MonsterConfig{
		Playfield: PlayfieldConfig{
			Width:             800,
			Height:            600,
			EntityWidth:       100,
			SpawnY:            -60,
			LossMargin:        60,
			NearTop:           150,
			EdgeMargin:        10,
			PlacementAttempts: 10,
		},
		Tiers: []TierConfig{
			{Tier: 1, FallSpeed: 0.5, SpawnIntervalMS: 3000, MinSpawnInterval: 1000, AnswerMin: 2, AnswerMax: 20},
			{Tier: 2, FallSpeed: 0.8, SpawnIntervalMS: 2500, MinSpawnInterval: 1000, AnswerMin: 10, AnswerMax: 50},
			{Tier: 3, FallSpeed: 0.4, SpawnIntervalMS: 4000, MinSpawnInterval: 1500, AnswerMin: 20, AnswerMax: 100},
		},
		Scoring: ScoringConfig{
			PointsPerMatch:     10,
			TightenEvery:       50,
			TightenStepMS:      200,
			ScoreSpeedDivisor:  5000,
			ProjectileFlightMS: 200,
			ImpactMS:           300,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			SampleRate:   44100,
			BufferMS:     100,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMonstersYAML
}
