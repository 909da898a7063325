package bomber

import (
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
)

// player is one bomber on the arena. Positions are world units and mark the
// top-left corner of a cell-sized square.
type player struct {
	id     core.PlayerID
	pos    ai.Point
	pushed ai.Point // position before this tick's move
	power  int
	dead   int // ticks since death, 0 while alive
}

func newPlayer(id core.PlayerID, cell ai.Point, cellSize, power int) *player {
	pos := ai.P(cell.X*cellSize, cell.Y*cellSize)
	return &player{id: id, pos: pos, pushed: pos, power: power}
}

func (p *player) alive() bool {
	return p.dead == 0
}

func (p *player) rect(cellSize int) core.Rect {
	return core.NewRect(p.pos.X, p.pos.Y, cellSize, cellSize)
}

func (p *player) cell(cellSize int) ai.Point {
	return ai.CellOf(p.pos, cellSize)
}

// cellRect is the world-space square of a grid cell.
func cellRect(c ai.Point, cellSize int) core.Rect {
	return core.NewRect(c.X*cellSize, c.Y*cellSize, cellSize, cellSize)
}

// move advances p by one tick in dir and resolves wall and bomb collisions.
func (g *Game) move(p *player, dir ai.Direction) {
	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return
	}
	cs, speed := g.cfg.Arena.CellSize, g.cfg.Arena.MoveSpeed

	old := p.pos
	p.pos = old.Add(dx*speed, dy*speed)

	hits := g.wallsTouching(p.rect(cs))
	if len(hits) > 0 {
		p.pos = old
	}
	if len(hits) == 1 {
		// Slide around the corner of a lone wall.
		w := ai.P(hits[0].X*cs, hits[0].Y*cs)
		if dx != 0 {
			p.pos.Y += speed * sign(p.pos.Y-w.Y)
		} else {
			p.pos.X += speed * sign(p.pos.X-w.X)
		}
	}

	g.blockByBombs(p, old)
}

// wallsTouching lists the solid cells overlapping r, row by row.
func (g *Game) wallsTouching(r core.Rect) []ai.Point {
	cs := g.cfg.Arena.CellSize
	var hits []ai.Point
	for y := r.Y / cs; y <= (r.Bottom()-1)/cs; y++ {
		for x := r.X / cs; x <= (r.Right()-1)/cs; x++ {
			c := ai.P(x, y)
			if g.arena.solid(c) && cellRect(c, cs).Intersects(r) {
				hits = append(hits, c)
			}
		}
	}
	return hits
}

// blockByBombs undoes a step that would enter a bomb's cell. Only one axis
// changes per tick.
func (g *Game) blockByBombs(p *player, old ai.Point) {
	cs := g.cfg.Arena.CellSize
	switch {
	case p.pos.X != old.X:
		if tx, ok := aheadOf(old.X, p.pos.X, cs); ok && g.bombAtWorld(tx, p.pos.Y) {
			p.pos.X = old.X
		}
	case p.pos.Y != old.Y:
		if ty, ok := aheadOf(old.Y, p.pos.Y, cs); ok && g.bombAtWorld(p.pos.X, ty) {
			p.pos.Y = old.Y
		}
	}
}

// aheadOf returns the world coordinate of the cell a step from old to cur
// is entering, if any. From an unaligned position only the step that leaves
// the cell the player mostly covers counts.
func aheadOf(old, cur, cs int) (int, bool) {
	forward := cur > old
	switch {
	case old%cs == 0:
		if forward {
			return old + cs, true
		}
		return old - cs, true
	case old%cs < cs/2:
		if forward {
			return (old/cs + 1) * cs, true
		}
	default:
		if !forward {
			return (old / cs) * cs, true
		}
	}
	return 0, false
}

func (g *Game) bombAtWorld(x, y int) bool {
	cs := g.cfg.Arena.CellSize
	for _, b := range g.bombs {
		if b.at.X*cs == x && b.at.Y*cs == y {
			return true
		}
	}
	return false
}

// separate pushes players back when their squares overlap after moving.
// A player whose previous position is clear of the other is the one sent
// back; when that does not single one out, both are.
func (g *Game) separate() {
	a, b := g.players[0], g.players[1]
	if !a.alive() || !b.alive() {
		return
	}
	cs := g.cfg.Arena.CellSize
	if !a.rect(cs).Intersects(b.rect(cs)) {
		return
	}

	aStuck := core.NewRect(a.pushed.X, a.pushed.Y, cs, cs).Intersects(b.rect(cs))
	bStuck := a.rect(cs).Intersects(core.NewRect(b.pushed.X, b.pushed.Y, cs, cs))
	switch {
	case !aStuck && bStuck:
		a.pos = a.pushed
	case aStuck && !bStuck:
		b.pos = b.pushed
	default:
		a.pos = a.pushed
		b.pos = b.pushed
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
