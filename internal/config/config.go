// Package config provides YAML-based configuration loading for Bomber:
// arena geometry, bomb timings and the CPU player's scoring weights.
package config

// BomberConfig contains all configuration for a Bomber match.
type BomberConfig struct {
	Arena ArenaConfig `yaml:"arena"`
	Bomb  BombConfig  `yaml:"bomb"`
	AI    AIConfig    `yaml:"ai"`
}

// ArenaConfig defines the arena grid and movement.
type ArenaConfig struct {
	Width               int `yaml:"width"`                 // Cells, border included
	Height              int `yaml:"height"`                // Cells, border included
	CellSize            int `yaml:"cell_size"`             // World units per cell
	MoveSpeed           int `yaml:"move_speed"`            // World units per tick
	BreakableWallChance int `yaml:"breakable_wall_chance"` // Percent of free cells filled with bricks
	PowerUpChance       int `yaml:"power_up_chance"`       // Percent of broken bricks leaving a power-up
	WallMeltTicks       int `yaml:"wall_melt_ticks"`
	DeathMargin         int `yaml:"death_margin"` // Overlap slack before an explosion kills
}

// BombConfig defines bomb and explosion timings.
type BombConfig struct {
	FuseTicks      int `yaml:"fuse_ticks"`
	ExplosionTicks int `yaml:"explosion_ticks"`
	InitialPower   int `yaml:"initial_power"`
}

// AIConfig holds the CPU player's scoring weights.
type AIConfig struct {
	DistanceWeight             int `yaml:"distance_weight"`
	PowerUpScore               int `yaml:"power_up_score"`
	BreakWallScore             int `yaml:"break_wall_score"`
	OpponentStressWeight       int `yaml:"opponent_stress_weight"`
	RiskOfBomb                 int `yaml:"risk_of_bomb"`
	OpponentNotPassableTimeout int `yaml:"opponent_not_passable_timeout"`
	StressRadius               int `yaml:"stress_radius"`
	MaxStuckPressure           int `yaml:"max_stuck_pressure"` // 0 = unbounded
}

// TicksPerCell returns how many ticks a player needs to cross one cell.
func (a ArenaConfig) TicksPerCell() int {
	if a.MoveSpeed <= 0 {
		return 0
	}
	return a.CellSize / a.MoveSpeed
}
