package ai

import "testing"

func TestStress(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		from   Point
		radius int
		want   int
	}{
		{"calm", []string{"...", "...", "..."}, P(1, 1), 5, 0},
		{"one fire", []string{"x..", "...", "..."}, P(1, 1), 5, 11},
		{"boxed in", []string{"###", "#.#", "###"}, P(1, 1), 5, 0},
		{"radius bounds", []string{"....x"}, P(0, 0), 3, 0},
		{"radius reaches", []string{"....x"}, P(0, 0), 4, 20},
		{"walls cut reach", []string{".#x", "...", "..."}, P(0, 0), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, _ := parse(t, tt.rows...)
			if got := f.Stress(tt.from, tt.radius); got != tt.want {
				t.Errorf("Stress() = %d, expected %d", got, tt.want)
			}
		})
	}
}

func TestStressCountsDangerousOrigin(t *testing.T) {
	f, _, _ := parse(t, "..")
	f.AddBomb(Bomb{At: P(1, 0), Power: 1, Fuse: 150})

	// The bomb cell is impassable so only the painted origin is reachable.
	if got := f.Stress(P(0, 0), 5); got != 100 {
		t.Errorf("Stress() = %d, expected 100", got)
	}
}
