package bomber

import (
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
)

func TestChainReaction(t *testing.T) {
	g := newTestGame(t, ModeDuel, config.DefaultBomberConfig(), "###########", "#1..B.B..2#", "###########")
	first, second := g.bombs[0], g.bombs[1]
	first.power, first.fuse = 2, 1

	idle(g, 1)
	// Center plus two cells west, one east; the ray stops at the second bomb.
	if len(g.explosions) != 4 {
		t.Errorf("explosions = %d, expected 4", len(g.explosions))
	}
	if len(g.bombs) != 1 || second.fuse != 1 {
		t.Fatalf("second bomb fuse = %d, expected the blast to set it to 1", second.fuse)
	}

	idle(g, 1)
	if len(g.bombs) != 0 {
		t.Errorf("bombs = %d, expected the chained bomb to go off", len(g.bombs))
	}
	if len(g.explosions) != 7 {
		t.Errorf("explosions = %d, expected 7", len(g.explosions))
	}

	idle(g, 30)
	if len(g.explosions) != 0 {
		t.Errorf("explosions = %d after they burnt out, expected 0", len(g.explosions))
	}
	if g.State().GameOver {
		t.Error("GameOver = true, expected both players out of reach")
	}
}

func TestBlastMeltsBrick(t *testing.T) {
	cfg := config.DefaultBomberConfig()
	cfg.Arena.PowerUpChance = 100
	g := newTestGame(t, ModeDuel, cfg, "#########", "#1.B+..2#", "#########")
	g.bombs[0].fuse = 1

	idle(g, 1)
	if got := g.Capture().Tile(4, 1); got != TileMelting {
		t.Fatalf("Tile(4,1) = %q after the blast, expected %q", got, TileMelting)
	}
	for _, e := range g.explosions {
		if e.at.X > 3 {
			t.Errorf("explosion at %v, expected the brick to stop the ray", e.at)
		}
	}

	idle(g, 29)
	if got := g.Capture().Tile(4, 1); got != TileMelting {
		t.Fatalf("Tile(4,1) = %q after 30 ticks, expected %q", got, TileMelting)
	}
	idle(g, 1)
	if got := g.Capture().Tile(4, 1); got != TilePowerUp {
		t.Errorf("Tile(4,1) = %q, expected %q", got, TilePowerUp)
	}
}

func TestBlastDestroysPowerUp(t *testing.T) {
	g := newTestGame(t, ModeDuel, config.DefaultBomberConfig(), "##########", "#1..Bo..2#", "##########")
	g.bombs[0].power = 2
	g.bombs[0].fuse = 1

	idle(g, 1)
	if got := g.Capture().Tile(5, 1); got != TileEmpty {
		t.Errorf("Tile(5,1) = %q, expected the power-up to burn", got)
	}
	for _, e := range g.explosions {
		if e.at.X > 4 {
			t.Errorf("explosion at %v, expected the power-up to stop the ray", e.at)
		}
	}
}

func TestPickUp(t *testing.T) {
	g := newTestGame(t, ModeDuel, config.DefaultBomberConfig(), "#######", "#1o..2#", "#######")

	g.Step(press(core.ActionRight))
	if g.players[0].power != 2 {
		t.Errorf("power = %d, expected 2", g.players[0].power)
	}
	if got := g.Capture().Tile(2, 1); got != TileEmpty {
		t.Errorf("Tile(2,1) = %q, expected the power-up to be taken", got)
	}
}

func TestDropBomb(t *testing.T) {
	cfg := config.DefaultBomberConfig()
	g := newTestGame(t, ModeDuel, cfg, "#######", "#1...2#", "#######")
	g.players[0].power = 3

	g.Step(press(core.ActionFire))
	g.Step(press(core.ActionFire))
	if len(g.bombs) != 1 {
		t.Fatalf("bombs = %d, expected one bomb per cell", len(g.bombs))
	}
	b := g.bombs[0]
	if b.at != ai.P(1, 1) || b.power != 3 || b.owner != core.Player1 {
		t.Errorf("bomb = %+v, expected power 3 at (1,1) owned by player 1", *b)
	}
	if b.fuse != cfg.Bomb.FuseTicks-2 {
		t.Errorf("fuse = %d, expected %d", b.fuse, cfg.Bomb.FuseTicks-2)
	}
}

func TestBurningMargin(t *testing.T) {
	tests := []struct {
		x        int
		expected bool
	}{
		{32, false},
		{34, false},
		{36, false}, // overlap equals the margin
		{37, true},
		{64, true},
	}

	for _, tt := range tests {
		g := newTestGame(t, ModeDuel, config.DefaultBomberConfig(), "#######", "#1...2#", "#######")
		g.explosions = []*explosion{{at: ai.P(2, 1), remain: 30}}
		g.players[0].pos = ai.P(tt.x, 32)

		if got := g.burning(g.players[0]); got != tt.expected {
			t.Errorf("burning() at x=%d = %v, expected %v", tt.x, got, tt.expected)
		}
	}
}

func TestWorldFlagsMeltingBricks(t *testing.T) {
	g := newTestGame(t, ModeDuel, config.DefaultBomberConfig(), "#######", "#1+o.2#", "#######")
	g.arena.ignite(ai.P(2, 1))

	w := g.world()
	found := false
	for _, wall := range w.Walls {
		if wall.At == ai.P(2, 1) {
			found = true
			if !wall.Breakable || !wall.Melting {
				t.Errorf("wall = %+v, expected a melting brick", wall)
			}
		}
	}
	if !found {
		t.Error("world() is missing the brick at (2,1)")
	}
	if len(w.PowerUps) != 1 || w.PowerUps[0] != ai.P(3, 1) {
		t.Errorf("PowerUps = %v, expected [(3,1)]", w.PowerUps)
	}
	if len(w.Agents) != 2 {
		t.Errorf("Agents = %v, expected both players", w.Agents)
	}
}
