package bomber

import (
	"strings"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/multiplayer"
)

// Tile bytes used by Snapshot.Tiles.
const (
	TileEmpty   = ' '
	TileWall    = '#'
	TileBrick   = '+'
	TileMelting = '%'
	TilePowerUp = 'o'
)

// Snapshot captures the complete visible state of a match. It is used for
// determinism tests and sent to online clients, which render it directly.
type Snapshot struct {
	Mode     string
	Seed     int64
	Tick     int
	Width    int // cells
	Height   int // cells
	CellSize int
	Tiles    string // row-major, one Tile byte per cell
	Bombs    []BombState
	Fire     []CellState
	Players  [2]PlayerState
	Over     bool
	Winner   core.PlayerID
	Paused   bool
}

// PlayerState is a player in world units.
type PlayerState struct {
	X, Y  int
	Power int
	Dead  int // ticks since death, 0 while alive
}

// Alive reports whether the player is still in the match.
func (p PlayerState) Alive() bool {
	return p.Dead == 0
}

// BombState is an armed bomb on a cell.
type BombState struct {
	X, Y  int
	Power int
	Fuse  int
}

// CellState is a burning cell.
type CellState struct {
	X, Y int
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (Snapshot) IsGameSnapshot() {}

var _ multiplayer.GameSnapshot = Snapshot{}

// Snapshot returns the current state for network transmission.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	return g.Capture()
}

// Capture returns the current state as a Snapshot.
func (g *Game) Capture() Snapshot {
	a := g.arena
	s := Snapshot{
		Mode:     string(g.mode),
		Seed:     g.seed,
		Tick:     g.tick,
		Width:    a.w,
		Height:   a.h,
		CellSize: g.cfg.Arena.CellSize,
		Over:     g.over,
		Winner:   g.winner,
		Paused:   g.paused,
	}

	var tiles strings.Builder
	tiles.Grow(len(a.tiles))
	for i, t := range a.tiles {
		switch {
		case t == tileWall:
			tiles.WriteByte(TileWall)
		case t == tileBrick && a.melt[i] > 0:
			tiles.WriteByte(TileMelting)
		case t == tileBrick:
			tiles.WriteByte(TileBrick)
		case t == tilePowerUp:
			tiles.WriteByte(TilePowerUp)
		default:
			tiles.WriteByte(TileEmpty)
		}
	}
	s.Tiles = tiles.String()

	for _, b := range g.bombs {
		s.Bombs = append(s.Bombs, BombState{X: b.at.X, Y: b.at.Y, Power: b.power, Fuse: b.fuse})
	}
	for _, e := range g.explosions {
		s.Fire = append(s.Fire, CellState{X: e.at.X, Y: e.at.Y})
	}
	for i, p := range g.players {
		s.Players[i] = PlayerState{X: p.pos.X, Y: p.pos.Y, Power: p.power, Dead: p.dead}
	}
	return s
}

// Tile returns the tile byte at a cell, TileWall outside the arena.
func (s Snapshot) Tile(x, y int) byte {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return TileWall
	}
	return s.Tiles[y*s.Width+x]
}
