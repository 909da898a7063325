package ai

import "testing"

// parse builds a field from an ASCII map.
//
//	.  empty        #  wall         +  brick
//	o  power-up     B  bomb (power 1, full fuse)
//	x  explosion    A  the agent    E  the opponent
func parse(t *testing.T, rows ...string) (f *Field, self, opponent Point) {
	t.Helper()

	self, opponent = NoPoint, NoPoint
	w := World{W: len(rows[0]), H: len(rows)}
	rules := DefaultRules()

	for y, row := range rows {
		if len(row) != w.W {
			t.Fatalf("row %d has width %d, expected %d", y, len(row), w.W)
		}
		for x, ch := range row {
			p := P(x, y)
			switch ch {
			case '.':
			case '#':
				w.Walls = append(w.Walls, Wall{At: p})
			case '+':
				w.Walls = append(w.Walls, Wall{At: p, Breakable: true})
			case 'o':
				w.PowerUps = append(w.PowerUps, p)
			case 'B':
				w.Bombs = append(w.Bombs, Bomb{At: p, Power: 1, Fuse: rules.FuseTicks})
			case 'x':
				w.Explosions = append(w.Explosions, p)
			case 'A':
				self = p
				w.Agents = append(w.Agents, p)
			case 'E':
				opponent = p
				w.Agents = append(w.Agents, p)
			default:
				t.Fatalf("unknown fixture rune %q", ch)
			}
		}
	}

	return BuildField(w, rules), self, opponent
}

// bfs returns hop distances over passable cells, -1 for unreachable ones.
func bfs(f *Field, from Point) []int {
	dist := make([]int, len(f.Cells))
	for i := range dist {
		dist[i] = -1
	}
	dist[f.index(from)] = 0
	queue := []Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range neighborOffsets {
			n := p.Add(d.X, d.Y)
			if f.Passable(n) && dist[f.index(n)] < 0 {
				dist[f.index(n)] = dist[f.index(p)] + 1
				queue = append(queue, n)
			}
		}
	}
	return dist
}

// world converts a cell to the world position of its top-left corner.
func world(p Point, cellSize int) Point {
	return Point{X: p.X * cellSize, Y: p.Y * cellSize}
}
