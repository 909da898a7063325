package bomber

import (
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
)

// bomb is an armed bomb sitting on a cell.
type bomb struct {
	at    ai.Point
	power int
	fuse  int
	owner core.PlayerID
}

// explosion is one burning cell.
type explosion struct {
	at     ai.Point
	remain int
}

// blastDirections is the order a detonation spreads in: west, east, north, south.
var blastDirections = [4]ai.Point{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}

func (g *Game) bombAt(c ai.Point) *bomb {
	for _, b := range g.bombs {
		if b.at == c {
			return b
		}
	}
	return nil
}

// dropBomb arms a bomb on the cell p mostly covers unless one is there.
func (g *Game) dropBomb(p *player) {
	c := p.cell(g.cfg.Arena.CellSize)
	if g.bombAt(c) != nil {
		return
	}
	g.bombs = append(g.bombs, &bomb{
		at:    c,
		power: p.power,
		fuse:  g.cfg.Bomb.FuseTicks,
		owner: p.id,
	})
}

// pickUp collects every power-up overlapping p.
func (g *Game) pickUp(p *player) {
	cs := g.cfg.Arena.CellSize
	r := p.rect(cs)
	for y := r.Y / cs; y <= (r.Bottom()-1)/cs; y++ {
		for x := r.X / cs; x <= (r.Right()-1)/cs; x++ {
			c := ai.P(x, y)
			if g.arena.at(c) == tilePowerUp && cellRect(c, cs).Intersects(r) {
				g.arena.set(c, tileEmpty)
				p.power++
			}
		}
	}
}

// burning reports whether an explosion overlaps p by more than the death margin.
func (g *Game) burning(p *player) bool {
	cs, margin := g.cfg.Arena.CellSize, g.cfg.Arena.DeathMargin
	r := p.rect(cs)
	for _, e := range g.explosions {
		w, h := r.Overlap(cellRect(e.at, cs))
		if w > margin && h > margin {
			return true
		}
	}
	return false
}

// fadeExplosions ages explosions and drops the burnt-out ones.
func (g *Game) fadeExplosions() {
	live := g.explosions[:0]
	for _, e := range g.explosions {
		e.remain--
		if e.remain > 0 {
			live = append(live, e)
		}
	}
	g.explosions = live
}

// tickBombs burns every fuse and detonates the bombs that run out. A blast
// reaching another bomb makes it go off on the next tick.
func (g *Game) tickBombs() {
	var due []*bomb
	armed := g.bombs[:0]
	for _, b := range g.bombs {
		b.fuse--
		if b.fuse <= 0 {
			due = append(due, b)
		} else {
			armed = append(armed, b)
		}
	}
	g.bombs = armed

	for _, b := range due {
		g.detonate(b)
	}
}

func (g *Game) detonate(b *bomb) {
	ttl := g.cfg.Bomb.ExplosionTicks
	g.explosions = append(g.explosions, &explosion{at: b.at, remain: ttl})

	for _, d := range blastDirections {
		c := b.at
		for range b.power {
			c = c.Add(d.X, d.Y)
			if g.arena.solid(c) {
				g.arena.ignite(c)
				break
			}
			if other := g.bombAt(c); other != nil {
				other.fuse = 1
				break
			}
			if g.arena.at(c) == tilePowerUp {
				g.arena.set(c, tileEmpty)
				break
			}
			g.explosions = append(g.explosions, &explosion{at: c, remain: ttl})
		}
	}
}
