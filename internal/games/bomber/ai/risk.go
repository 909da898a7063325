package ai

// Wall is a wall as seen by the snapshot builder.
type Wall struct {
	At        Point
	Breakable bool
	// Melting bricks were already hit by a blast; they still block but
	// cannot be broken again.
	Melting bool
}

// World is the authoritative arena state the snapshot is built from.
type World struct {
	W, H       int
	Walls      []Wall
	Bombs      []Bomb
	PowerUps   []Point
	Explosions []Point
	Agents     []Point
}

// BuildField converts world state into a Field with risk painted for every
// armed bomb. It does not modify w.
func BuildField(w World, rules Rules) *Field {
	f := NewField(w.W, w.H, rules)

	for _, wall := range w.Walls {
		if wall.Breakable && !wall.Melting {
			f.Set(wall.At, KindBrick)
		} else {
			f.Set(wall.At, KindWall)
		}
	}
	for _, p := range w.PowerUps {
		f.Set(p, KindPowerUp)
	}
	for _, p := range w.Agents {
		if f.InBounds(p) && f.Cell(p).Kind == KindEmpty {
			f.Set(p, KindAgent)
		}
	}
	for _, p := range w.Explosions {
		f.Ignite(p)
	}
	for _, b := range w.Bombs {
		if !f.InBounds(b.At) || f.Cell(b.At).Kind == KindBomb {
			continue
		}
		f.Set(b.At, KindBomb)
		f.Bombs = append(f.Bombs, b)
	}
	f.paintRisk()

	return f
}

// AddBomb places a bomb, repaints risk for the whole field and returns how
// many bricks the new bomb's blast would break. A cell that already holds a
// bomb is left unchanged and 0 is returned.
func (f *Field) AddBomb(b Bomb) int {
	if !f.InBounds(b.At) || f.Cell(b.At).Kind == KindBomb {
		return 0
	}
	f.Set(b.At, KindBomb)
	f.Bombs = append(f.Bombs, b)
	f.paintRisk()

	breaks := 0
	for _, d := range neighborOffsets {
		f.ray(b, d, func(p Point, k Kind) {
			if k == KindBrick {
				breaks++
			}
		}, nil)
	}
	return breaks
}

// ray walks one blast direction of b. open is called for every cell the
// blast covers, stop for the obstacle that ends it (if any).
func (f *Field) ray(b Bomb, d Point, stop func(Point, Kind), open func(Point)) {
	p := b.At
	for n := 1; n <= b.Power; n++ {
		p = p.Add(d.X, d.Y)
		if !f.InBounds(p) {
			return
		}
		switch k := f.Cell(p).Kind; k {
		case KindWall, KindBrick, KindBomb, KindPowerUp:
			if stop != nil {
				stop(p, k)
			}
			return
		}
		if open != nil {
			open(p)
		}
	}
}

// paintRisk recomputes Blast and Risk from scratch for every armed bomb.
// Chained bombs detonate one tick after the blast that reaches them.
func (f *Field) paintRisk() {
	for i := range f.Cells {
		c := &f.Cells[i]
		c.Blast = 0
		if c.Burning {
			c.Risk = f.rules.RiskOfBomb
		} else {
			c.Risk = 0
		}
	}

	at := make(map[Point]int, len(f.Bombs))
	detonate := make([]int, len(f.Bombs))
	for i, b := range f.Bombs {
		at[b.At] = i
		detonate[i] = max(1, b.Fuse)
	}

	for changed := true; changed; {
		changed = false
		for i, b := range f.Bombs {
			for _, d := range neighborOffsets {
				f.ray(b, d, func(p Point, k Kind) {
					if k != KindBomb {
						return
					}
					j, ok := at[p]
					if ok && detonate[i]+1 < detonate[j] {
						detonate[j] = detonate[i] + 1
						changed = true
					}
				}, nil)
			}
		}
	}

	for i, b := range f.Bombs {
		t := detonate[i]
		f.mark(b.At, t)
		for _, d := range neighborOffsets {
			f.ray(b, d, nil, func(p Point) { f.mark(p, t) })
		}
	}
}

// mark records a blast arriving at p in t ticks, keeping the earliest one.
func (f *Field) mark(p Point, t int) {
	c := f.Cell(p)
	if c.Blast == 0 || t < c.Blast {
		c.Blast = t
	}
	if c.Burning {
		return
	}
	risk := max(1, f.rules.RiskOfBomb-c.Blast)
	if risk > c.Risk {
		c.Risk = risk
	}
}
