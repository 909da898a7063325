package ai

// SearchInput is everything Search reads besides the field.
type SearchInput struct {
	Self          Point
	Opponent      Point
	Power         int
	OpponentAlive bool
	// StuckPressure boosts the stress bonus of bombing the agent's own cell.
	StuckPressure int
	// Blockade makes the opponent's cell impassable.
	Blockade bool
	Weights  Weights
}

// SearchResult is the best destination found by Search.
type SearchResult struct {
	Best  Point
	Score int
	// Fire is true if bombing Best was viable and scored.
	Fire bool
	// Enqueued counts queue insertions, the origin included.
	Enqueued int
}

// Search explores every cell reachable from in.Self and returns the best
// scoring one. It overwrites the scratch fields of f, so callers sharing a
// field between agents must pass a clone. Predecessors stay in f for the
// caller to backtrack.
//
// Cells are relaxed in FIFO order with risk as the edge cost. A cell is
// re-queued whenever a cheaper route to it shows up.
func Search(f *Field, in SearchInput) SearchResult {
	f.ResetScratch()

	rules := f.rules
	w := in.Weights
	radius := w.StressRadius
	if radius <= 0 {
		radius = DefaultStressRadius
	}
	dangerLimit := rules.RiskOfBomb * 9 / 10

	opponent := in.Opponent
	blocked := NoPoint
	if in.OpponentAlive {
		blocked = opponent
	}

	baseStress := 0
	if in.OpponentAlive {
		baseStress = f.Stress(opponent, radius)
	}

	origin := f.Cell(in.Self)
	origin.Cost = 0
	origin.Distance = 0

	res := SearchResult{
		Best:     in.Self,
		Score:    -origin.Risk,
		Enqueued: 1,
	}

	queue := []Point{in.Self}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		cur := f.Cell(p)

		score := -cur.Risk - cur.Distance*w.DistanceWeight
		if cur.Kind == KindPowerUp {
			score += w.PowerUpScore
		}

		fire := false
		if cur.Kind != KindBomb && p != opponent {
			sim := f.Clone()
			breaks := sim.AddBomb(Bomb{At: p, Power: in.Power, Fuse: rules.FuseTicks})
			if sim.CanEscape(p, blocked) {
				if breaks > 0 {
					score += breaks * w.BreakWallScore
					fire = true
				}
				if in.OpponentAlive {
					if delta := sim.Stress(opponent, radius) - baseStress; delta > 0 {
						weight := w.StressWeight
						if p == in.Self {
							weight += in.StuckPressure
						}
						score += delta * weight
						fire = true
					}
				}
			}
		}

		if score > res.Score {
			res.Best = p
			res.Score = score
			res.Fire = fire
		}

		for _, d := range neighborOffsets {
			next := p.Add(d.X, d.Y)
			if !f.Passable(next) {
				continue
			}
			if in.Blockade && next == opponent {
				continue
			}
			nc := f.Cell(next)
			if nc.Risk > dangerLimit && nc.Risk > cur.Risk {
				continue
			}
			cost := cur.Cost + nc.Risk
			if cost >= nc.Cost {
				continue
			}
			nc.Cost = cost
			nc.Distance = cur.Distance + 1
			nc.Prev = p
			queue = append(queue, next)
			res.Enqueued++
		}
	}

	return res
}
