package ai

// CanEscape reports whether an agent standing on from can walk to a cell no
// blast will reach before any pending blast catches it on the way. The
// blocked cell (the opponent's body) is never entered.
//
// A cell entered after d hops is only usable if its blast arrives later than
// the agent needs to cross it, one extra cell of slack included.
func (f *Field) CanEscape(from, blocked Point) bool {
	if !f.InBounds(from) {
		return false
	}

	type step struct {
		at   Point
		hops int
	}

	tpc := f.rules.TicksPerCell
	seen := make([]bool, len(f.Cells))
	seen[f.index(from)] = true
	queue := []step{{at: from}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range neighborOffsets {
			next := cur.at.Add(d.X, d.Y)
			if !f.Passable(next) || next == blocked {
				continue
			}
			i := f.index(next)
			if seen[i] {
				continue
			}
			seen[i] = true

			c := &f.Cells[i]
			if c.Burning {
				continue
			}
			hops := cur.hops + 1
			if c.Blast == 0 {
				return true
			}
			if c.Blast <= hops*tpc+tpc {
				continue
			}
			queue = append(queue, step{at: next, hops: hops})
		}
	}
	return false
}
