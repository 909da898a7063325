package ai

import "testing"

func TestCanEscape(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		bomb    Bomb
		blocked Point
		want    bool
	}{
		{"open corridor", "...", Bomb{At: P(0, 0), Power: 1, Fuse: 150}, NoPoint, true},
		{"dead end", "..", Bomb{At: P(0, 0), Power: 2, Fuse: 150}, NoPoint, false},
		{"opponent in the way", "...", Bomb{At: P(0, 0), Power: 1, Fuse: 150}, P(1, 0), false},
		{"long run in time", ".....", Bomb{At: P(0, 0), Power: 3, Fuse: 150}, NoPoint, true},
		{"fuse too short", ".....", Bomb{At: P(0, 0), Power: 3, Fuse: 20}, NoPoint, false},
		{"walled in", ".#...", Bomb{At: P(0, 0), Power: 1, Fuse: 150}, NoPoint, false},
		{"brick in the way", "..+..", Bomb{At: P(0, 0), Power: 2, Fuse: 150}, NoPoint, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, _ := parse(t, tt.row)
			f.AddBomb(tt.bomb)
			if got := f.CanEscape(tt.bomb.At, tt.blocked); got != tt.want {
				t.Errorf("CanEscape() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestCanEscapeAroundCorner(t *testing.T) {
	f, _, _ := parse(t,
		"...#",
		"##.#",
		"##..",
	)
	f.AddBomb(Bomb{At: P(0, 0), Power: 2, Fuse: 150})

	if !f.CanEscape(P(0, 0), NoPoint) {
		t.Error("expected an escape around the corner")
	}
}

func TestCanEscapeAvoidsFire(t *testing.T) {
	f, _, _ := parse(t, ".x..")
	f.AddBomb(Bomb{At: P(0, 0), Power: 1, Fuse: 150})

	if f.CanEscape(P(0, 0), NoPoint) {
		t.Error("escape must not run through a live explosion")
	}
}

func TestCanEscapeFromChainedBlast(t *testing.T) {
	// The existing bomb goes off in 5 ticks and sets the new one off right after.
	w := World{W: 6, H: 1, Bombs: []Bomb{{At: P(3, 0), Power: 2, Fuse: 5}}}
	f := BuildField(w, DefaultRules())
	f.AddBomb(Bomb{At: P(1, 0), Power: 1, Fuse: 150})

	if got := f.Cell(P(0, 0)).Blast; got != 6 {
		t.Errorf("Blast = %d, expected 6", got)
	}
	if f.CanEscape(P(1, 0), NoPoint) {
		t.Error("expected no escape from a chained bomb")
	}
}
