package config

import (
	_ "embed"
)

//go:embed defaults/bomber.yaml
var defaultBomberYAML []byte

// DefaultBomberConfig returns the reference configuration: a 25x15 arena
// of 32-unit cells crossed at 2 units per tick.
func DefaultBomberConfig() BomberConfig {
	return BomberConfig{
		Arena: ArenaConfig{
			Width:               25,
			Height:              15,
			CellSize:            32,
			MoveSpeed:           2,
			BreakableWallChance: 50,
			PowerUpChance:       10,
			WallMeltTicks:       30,
			DeathMargin:         4,
		},
		Bomb: BombConfig{
			FuseTicks:      150,
			ExplosionTicks: 30,
			InitialPower:   1,
		},
		AI: AIConfig{
			DistanceWeight:             1,
			PowerUpScore:               30,
			BreakWallScore:             10,
			OpponentStressWeight:       1,
			RiskOfBomb:                 320,
			OpponentNotPassableTimeout: 60,
			StressRadius:               5,
			MaxStuckPressure:           0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBomberYAML
}
