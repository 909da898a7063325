// Package ai implements the CPU player's per-tick decision engine for Bomber.
//
// Each tick the engine receives a Field (a snapshot of the arena with a risk
// value per cell), explores the reachable cells from the agent's position,
// scores each one as a destination and simulates placing a bomb there on a
// cloned Field. The package has no dependency on the game loop or the UI.
package ai

import (
	"fmt"
	"math"
)

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

// NoPoint marks an absent predecessor.
var NoPoint = Point{X: -1, Y: -1}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance to another point.
func (p Point) Manhattan(other Point) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// neighborOffsets is the fixed expansion order: west, east, north, south.
var neighborOffsets = [4]Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Kind is the occupant of a cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindWall       // indestructible
	KindBrick      // destructible wall
	KindBomb
	KindPowerUp
	KindAgent
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindWall:
		return "wall"
	case KindBrick:
		return "brick"
	case KindBomb:
		return "bomb"
	case KindPowerUp:
		return "power-up"
	case KindAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// Cell is one grid square of the Field.
type Cell struct {
	Kind Kind

	// Risk grows as a pending blast gets closer; 0 means safe.
	Risk int
	// Blast is the number of ticks until a pending blast reaches the cell, 0 if none.
	Blast int
	// Burning is set while an explosion covers the cell.
	Burning bool

	// Search scratch, reset before every Search run.
	Distance int
	Cost     int
	Prev     Point
}

// Passable reports whether an agent may walk onto the cell.
func (c Cell) Passable() bool {
	return c.Kind != KindWall && c.Kind != KindBrick && c.Kind != KindBomb
}

// Rules are the arena timings the risk model and the escape check depend on.
type Rules struct {
	// TicksPerCell is how many ticks an agent needs to cross one cell.
	TicksPerCell int
	// FuseTicks is the fuse of a freshly placed bomb.
	FuseTicks int
	// RiskOfBomb is the largest risk a single bomb can produce. Search
	// refuses cells above 90% of it, so it must be at least 20*TicksPerCell
	// for that band to cover the time spent crossing a cell.
	RiskOfBomb int
}

// DefaultRules matches the reference arena: 32 units per cell, 2 units per tick.
func DefaultRules() Rules {
	return Rules{
		TicksPerCell: 16,
		FuseTicks:    150,
		RiskOfBomb:   320,
	}
}

// Bomb is an armed bomb on the Field.
type Bomb struct {
	At    Point
	Power int // cells per axis direction
	Fuse  int // ticks until detonation
}

// Field is the per-tick grid snapshot.
// Cells are stored in row-major order: index = y*W + x.
type Field struct {
	W, H  int
	Cells []Cell
	Bombs []Bomb

	rules Rules
}

// NewField creates an empty field of the given size.
func NewField(w, h int, rules Rules) *Field {
	f := &Field{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
		rules: rules,
	}
	f.ResetScratch()
	return f
}

// Rules returns the timings the field was built with.
func (f *Field) Rules() Rules {
	return f.rules
}

func (f *Field) index(p Point) int {
	return p.Y*f.W + p.X
}

// InBounds returns true if the point lies inside the field.
func (f *Field) InBounds(p Point) bool {
	return p.X >= 0 && p.X < f.W && p.Y >= 0 && p.Y < f.H
}

// Cell returns a pointer to the cell at p. The point must be in bounds.
func (f *Field) Cell(p Point) *Cell {
	return &f.Cells[f.index(p)]
}

// Passable reports whether p is inside the field and walkable.
func (f *Field) Passable(p Point) bool {
	return f.InBounds(p) && f.Cells[f.index(p)].Passable()
}

// Set changes the occupant of a cell. Out-of-bounds points are ignored.
func (f *Field) Set(p Point, k Kind) {
	if f.InBounds(p) {
		f.Cells[f.index(p)].Kind = k
	}
}

// Ignite marks a cell as covered by a live explosion.
func (f *Field) Ignite(p Point) {
	if !f.InBounds(p) {
		return
	}
	c := &f.Cells[f.index(p)]
	c.Burning = true
	c.Risk = f.rules.RiskOfBomb
}

// Clone returns a deep copy of the field. Changes to the copy never reach f.
func (f *Field) Clone() *Field {
	cells := make([]Cell, len(f.Cells))
	copy(cells, f.Cells)
	bombs := make([]Bomb, len(f.Bombs))
	copy(bombs, f.Bombs)
	return &Field{
		W:     f.W,
		H:     f.H,
		Cells: cells,
		Bombs: bombs,
		rules: f.rules,
	}
}

// ResetScratch marks every cell as unvisited.
func (f *Field) ResetScratch() {
	for i := range f.Cells {
		f.Cells[i].Distance = 0
		f.Cells[i].Cost = math.MaxInt
		f.Cells[i].Prev = NoPoint
	}
}
