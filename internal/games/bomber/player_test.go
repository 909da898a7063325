package bomber

import (
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		start    ai.Point // zero keeps the spawn
		dir      ai.Direction
		expected ai.Point
	}{
		{
			name:     "free step",
			rows:     []string{"#######", "#1...2#", "#######"},
			dir:      ai.DirRight,
			expected: ai.P(34, 32),
		},
		{
			name:     "wall ahead",
			rows:     []string{"#######", "#1...2#", "#######"},
			dir:      ai.DirLeft,
			expected: ai.P(32, 32),
		},
		{
			name:     "slides around a corner",
			rows:     []string{"#####", "#1..#", "#.#.#", "#..2#", "#####"},
			start:    ai.P(32, 38),
			dir:      ai.DirRight,
			expected: ai.P(32, 36),
		},
		{
			name:     "slides the other way",
			rows:     []string{"#####", "#...#", "#.#.#", "#1.2#", "#####"},
			start:    ai.P(32, 90),
			dir:      ai.DirRight,
			expected: ai.P(32, 92),
		},
		{
			name:     "bomb ahead",
			rows:     []string{"#######", "#1B..2#", "#######"},
			dir:      ai.DirRight,
			expected: ai.P(32, 32),
		},
		{
			name:     "leaves own bomb",
			rows:     []string{"#######", "#B...2#", "#######"},
			start:    ai.P(32, 32),
			dir:      ai.DirRight,
			expected: ai.P(34, 32),
		},
		{
			name:     "unaligned step toward a bomb",
			rows:     []string{"#######", "#.1B.2#", "#######"},
			start:    ai.P(56, 32),
			dir:      ai.DirRight,
			expected: ai.P(58, 32),
		},
		{
			name:     "bomb ahead of an unaligned step",
			rows:     []string{"#######", "#1.B.2#", "#######"},
			start:    ai.P(70, 32),
			dir:      ai.DirRight,
			expected: ai.P(70, 32),
		},
		{
			name:     "stop",
			rows:     []string{"#######", "#1...2#", "#######"},
			dir:      ai.DirNone,
			expected: ai.P(32, 32),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, ModeDuel, config.DefaultBomberConfig(), tt.rows...)
			p := g.players[0]
			if tt.start != (ai.Point{}) {
				p.pos = tt.start
			}

			g.move(p, tt.dir)
			if p.pos != tt.expected {
				t.Errorf("move(%v) = %v, expected %v", tt.dir, p.pos, tt.expected)
			}
		})
	}
}

func TestAheadOf(t *testing.T) {
	tests := []struct {
		old, cur int
		target   int
		ok       bool
	}{
		{32, 34, 64, true},  // aligned, forward
		{32, 30, 0, true},   // aligned, backward
		{40, 42, 64, true},  // mostly in the cell, leaving forward
		{40, 38, 0, false},  // mostly in the cell, moving back into it
		{56, 54, 32, true},  // mostly in the next cell, leaving backward
		{56, 58, 0, false},  // mostly in the next cell, moving into it
		{48, 50, 0, false},  // halfway counts as the next cell
	}

	for _, tt := range tests {
		target, ok := aheadOf(tt.old, tt.cur, 32)
		if ok != tt.ok || (ok && target != tt.target) {
			t.Errorf("aheadOf(%d, %d) = %d, %v, expected %d, %v", tt.old, tt.cur, target, ok, tt.target, tt.ok)
		}
	}
}

func TestSeparate(t *testing.T) {
	tests := []struct {
		name      string
		p1, p2    ai.Point // positions after moving
		pushed    [2]ai.Point
		expected1 ai.Point
		expected2 ai.Point
	}{
		{
			name:      "mover walks into a standing player",
			p1:        ai.P(34, 32),
			p2:        ai.P(64, 32),
			pushed:    [2]ai.Point{ai.P(32, 32), ai.P(64, 32)},
			expected1: ai.P(32, 32),
			expected2: ai.P(64, 32),
		},
		{
			name:      "head-on",
			p1:        ai.P(50, 32),
			p2:        ai.P(70, 32),
			pushed:    [2]ai.Point{ai.P(48, 32), ai.P(72, 32)},
			expected1: ai.P(48, 32),
			expected2: ai.P(72, 32),
		},
		{
			name:      "apart",
			p1:        ai.P(32, 32),
			p2:        ai.P(96, 32),
			pushed:    [2]ai.Point{ai.P(32, 32), ai.P(96, 32)},
			expected1: ai.P(32, 32),
			expected2: ai.P(96, 32),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, ModeDuel, config.DefaultBomberConfig(), "#######", "#1...2#", "#######")
			a, b := g.players[0], g.players[1]
			a.pos, b.pos = tt.p1, tt.p2
			a.pushed, b.pushed = tt.pushed[0], tt.pushed[1]

			g.separate()
			if a.pos != tt.expected1 || b.pos != tt.expected2 {
				t.Errorf("separate() = %v, %v, expected %v, %v", a.pos, b.pos, tt.expected1, tt.expected2)
			}
		})
	}
}

func TestSeparateSkipsDeadPlayers(t *testing.T) {
	g := newTestGame(t, ModeDuel, config.DefaultBomberConfig(), "#######", "#12...#", "#######")
	a, b := g.players[0], g.players[1]
	b.dead = 1
	a.pos = ai.P(50, 32)
	a.pushed = ai.P(48, 32)

	g.separate()
	if a.pos != ai.P(50, 32) {
		t.Errorf("player 1 pushed back by a dead player: %v", a.pos)
	}
}
