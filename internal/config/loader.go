package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.monstermath/config.yaml -> ./configs/monsters.yaml -> embedded default
func Load(customPath string) (MonsterConfig, error) {
	// Custom path must exist and parse; it is an explicit request
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return MonsterConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return MonsterConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "monsters.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultMonstersYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result.
// Fields missing from data keep their default values.
func Parse(data []byte) (MonsterConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MonsterConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return MonsterConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable game.
func (c MonsterConfig) Validate() error {
	p := c.Playfield
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("config: playfield must have positive size, got %vx%v", p.Width, p.Height)
	}
	if p.EntityWidth <= 0 {
		return fmt.Errorf("config: entity_width must be positive, got %v", p.EntityWidth)
	}
	if p.LossBoundary() <= 0 {
		return fmt.Errorf("config: loss boundary %v is above the playfield", p.LossBoundary())
	}
	if p.PlacementAttempts < 1 {
		return fmt.Errorf("config: placement_attempts must be at least 1, got %d", p.PlacementAttempts)
	}

	for n := MinTier; n <= MaxTier; n++ {
		t, err := c.Tier(n)
		if err != nil {
			return err
		}
		if t.FallSpeed <= 0 {
			return fmt.Errorf("config: tier %d fall_speed must be positive", n)
		}
		if t.SpawnIntervalMS <= 0 || t.MinSpawnInterval <= 0 {
			return fmt.Errorf("config: tier %d spawn intervals must be positive", n)
		}
		if t.MinSpawnInterval > t.SpawnIntervalMS {
			return fmt.Errorf("config: tier %d min_spawn_interval_ms exceeds spawn_interval_ms", n)
		}
		if t.TimeLimitSec < 0 {
			return fmt.Errorf("config: tier %d time_limit_sec must not be negative", n)
		}
	}

	if c.Scoring.PointsPerMatch <= 0 {
		return fmt.Errorf("config: points_per_match must be positive, got %d", c.Scoring.PointsPerMatch)
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("config: master_volume must be within [0, 1], got %v", c.Audio.MasterVolume)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".monstermath", filename)
}
