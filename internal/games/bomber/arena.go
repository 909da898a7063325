package bomber

import (
	"math/rand"

	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
)

// tile is the static content of an arena cell.
type tile uint8

const (
	tileEmpty tile = iota
	tileWall       // indestructible
	tileBrick      // breakable, melts after a blast
	tilePowerUp
)

// arena is the cell grid. Bombs, explosions and players live on top of it.
type arena struct {
	w, h  int
	tiles []tile
	melt  []int // ticks since a blast hit the brick, 0 while intact
}

func newArena(w, h int) *arena {
	return &arena{
		w:     w,
		h:     h,
		tiles: make([]tile, w*h),
		melt:  make([]int, w*h),
	}
}

// generateArena builds the border, the pillar grid and a random brick fill.
// The 3x3 corners the players spawn in stay free of bricks.
func generateArena(w, h, brickChance int, rng *rand.Rand) *arena {
	a := newArena(w, h)
	for y := range h {
		for x := range w {
			p := ai.P(x, y)
			switch {
			case x == 0 || y == 0 || x == w-1 || y == h-1:
				a.set(p, tileWall)
			case x%2 == 0 && y%2 == 0:
				a.set(p, tileWall)
			case x < 3 && y < 3, x > w-4 && y > h-4:
				// spawn corner
			case rng.Intn(100) < brickChance:
				a.set(p, tileBrick)
			}
		}
	}
	return a
}

func (a *arena) in(p ai.Point) bool {
	return p.X >= 0 && p.X < a.w && p.Y >= 0 && p.Y < a.h
}

// at returns the tile at p. Cells outside the grid read as walls.
func (a *arena) at(p ai.Point) tile {
	if !a.in(p) {
		return tileWall
	}
	return a.tiles[p.Y*a.w+p.X]
}

func (a *arena) set(p ai.Point, t tile) {
	if a.in(p) {
		i := p.Y*a.w + p.X
		a.tiles[i] = t
		a.melt[i] = 0
	}
}

// solid reports whether the tile stops players.
func (a *arena) solid(p ai.Point) bool {
	t := a.at(p)
	return t == tileWall || t == tileBrick
}

func (a *arena) melting(p ai.Point) bool {
	return a.in(p) && a.melt[p.Y*a.w+p.X] > 0
}

// ignite starts melting an intact brick.
func (a *arena) ignite(p ai.Point) {
	if a.at(p) == tileBrick && !a.melting(p) {
		a.melt[p.Y*a.w+p.X] = 1
	}
}

// meltStep advances every melting brick. A brick that has melted for
// meltTicks disappears and leaves a power-up with the given chance.
func (a *arena) meltStep(meltTicks, powerUpChance int, rng *rand.Rand) {
	for i, m := range a.melt {
		if m == 0 {
			continue
		}
		if m < meltTicks {
			a.melt[i]++
			continue
		}
		a.melt[i] = 0
		if rng.Intn(100) < powerUpChance {
			a.tiles[i] = tilePowerUp
		} else {
			a.tiles[i] = tileEmpty
		}
	}
}

// count returns how many cells hold t.
func (a *arena) count(t tile) int {
	n := 0
	for _, v := range a.tiles {
		if v == t {
			n++
		}
	}
	return n
}
