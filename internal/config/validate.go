package config

import "fmt"

// Validate reports the first inconsistent setting.
func (c BomberConfig) Validate() error {
	a, b, ai := c.Arena, c.Bomb, c.AI

	switch {
	case a.Width < 5 || a.Height < 5:
		return fmt.Errorf("config: arena must be at least 5x5, got %dx%d", a.Width, a.Height)
	case a.Width%2 == 0 || a.Height%2 == 0:
		return fmt.Errorf("config: arena width and height must be odd, got %dx%d", a.Width, a.Height)
	case a.CellSize <= 0 || a.MoveSpeed <= 0:
		return fmt.Errorf("config: arena.cell_size and arena.move_speed must be positive")
	case a.CellSize%a.MoveSpeed != 0:
		return fmt.Errorf("config: arena.cell_size (%d) must be divisible by arena.move_speed (%d)", a.CellSize, a.MoveSpeed)
	case !percent(a.BreakableWallChance) || !percent(a.PowerUpChance):
		return fmt.Errorf("config: wall and power-up chances must be within 0..100")
	case a.WallMeltTicks <= 0:
		return fmt.Errorf("config: arena.wall_melt_ticks must be positive")
	case a.DeathMargin < 0 || a.DeathMargin >= a.CellSize:
		return fmt.Errorf("config: arena.death_margin must be within 0..%d", a.CellSize-1)
	case b.FuseTicks <= 0 || b.ExplosionTicks <= 0:
		return fmt.Errorf("config: bomb.fuse_ticks and bomb.explosion_ticks must be positive")
	case b.InitialPower < 1:
		return fmt.Errorf("config: bomb.initial_power must be at least 1")
	case ai.RiskOfBomb <= b.FuseTicks:
		return fmt.Errorf("config: ai.risk_of_bomb (%d) must exceed bomb.fuse_ticks (%d)", ai.RiskOfBomb, b.FuseTicks)
	case ai.RiskOfBomb < minRiskOfBomb(a):
		return fmt.Errorf("config: ai.risk_of_bomb (%d) must be at least %d to cover two cells of travel", ai.RiskOfBomb, minRiskOfBomb(a))
	case ai.DistanceWeight < 0 || ai.PowerUpScore < 0 || ai.BreakWallScore < 0 || ai.OpponentStressWeight < 0:
		return fmt.Errorf("config: ai weights must not be negative")
	case ai.OpponentNotPassableTimeout < 0 || ai.StressRadius < 0 || ai.MaxStuckPressure < 0:
		return fmt.Errorf("config: ai timers and limits must not be negative")
	}
	return nil
}

// minRiskOfBomb keeps the CPU's danger band (the top 10% of risk_of_bomb)
// at least two cell crossings wide.
func minRiskOfBomb(a ArenaConfig) int {
	return 10 * 2 * a.TicksPerCell()
}

func percent(v int) bool {
	return v >= 0 && v <= 100
}
