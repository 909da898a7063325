package ai

// DefaultStressRadius is the hop radius of the stress estimate.
const DefaultStressRadius = 5

// Stress returns the percentage of cells reachable from from, within radius
// Manhattan hops, that carry any risk. The origin is always counted.
func (f *Field) Stress(from Point, radius int) int {
	if !f.InBounds(from) {
		return 0
	}

	seen := make([]bool, len(f.Cells))
	seen[f.index(from)] = true
	queue := []Point{from}

	reachable, dangerous := 0, 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		reachable++
		if f.Cell(p).Risk > 0 {
			dangerous++
		}

		for _, d := range neighborOffsets {
			next := p.Add(d.X, d.Y)
			if !f.Passable(next) || next.Manhattan(from) > radius {
				continue
			}
			if i := f.index(next); !seen[i] {
				seen[i] = true
				queue = append(queue, next)
			}
		}
	}

	return dangerous * 100 / reachable
}
