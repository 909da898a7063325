package bomber

import (
	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
)

// rulesFrom extracts the timings the decision engine depends on.
func rulesFrom(cfg config.BomberConfig) ai.Rules {
	return ai.Rules{
		TicksPerCell: cfg.Arena.TicksPerCell(),
		FuseTicks:    cfg.Bomb.FuseTicks,
		RiskOfBomb:   cfg.AI.RiskOfBomb,
	}
}

// weightsFrom maps the ai section of the config onto engine weights.
func weightsFrom(cfg config.BomberConfig) ai.Weights {
	return ai.Weights{
		DistanceWeight:   cfg.AI.DistanceWeight,
		PowerUpScore:     cfg.AI.PowerUpScore,
		BreakWallScore:   cfg.AI.BreakWallScore,
		StressWeight:     cfg.AI.OpponentStressWeight,
		BlockadeTimeout:  cfg.AI.OpponentNotPassableTimeout,
		StressRadius:     cfg.AI.StressRadius,
		MaxStuckPressure: cfg.AI.MaxStuckPressure,
	}
}

// world describes the current arena for the snapshot builder.
func (g *Game) world() ai.World {
	a := g.arena
	w := ai.World{W: a.w, H: a.h}

	for y := range a.h {
		for x := range a.w {
			c := ai.P(x, y)
			switch a.at(c) {
			case tileWall:
				w.Walls = append(w.Walls, ai.Wall{At: c})
			case tileBrick:
				w.Walls = append(w.Walls, ai.Wall{At: c, Breakable: true, Melting: a.melting(c)})
			case tilePowerUp:
				w.PowerUps = append(w.PowerUps, c)
			}
		}
	}
	for _, b := range g.bombs {
		w.Bombs = append(w.Bombs, ai.Bomb{At: b.at, Power: b.power, Fuse: b.fuse})
	}
	for _, e := range g.explosions {
		w.Explosions = append(w.Explosions, e.at)
	}
	for _, p := range g.players {
		if p.alive() {
			w.Agents = append(w.Agents, p.cell(g.cfg.Arena.CellSize))
		}
	}
	return w
}

// observe builds player i's view of the tick. field may be nil when no
// controller needs it.
func (g *Game) observe(i int, field *ai.Field) ai.Observation {
	self, other := g.players[i], g.players[1-i]
	return ai.Observation{
		Self:          self.pos,
		Opponent:      other.pos,
		CellSize:      g.cfg.Arena.CellSize,
		Power:         self.power,
		OpponentAlive: other.alive(),
		Field:         field,
	}
}
