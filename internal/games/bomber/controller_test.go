package bomber

import (
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
)

func TestHumanControllerHoldsDirection(t *testing.T) {
	h := NewHumanController(4)

	got := []ai.Direction{h.Command(press(core.ActionRight), ai.Observation{}).Move}
	for range 4 {
		got = append(got, h.Command(core.NewInputFrame(), ai.Observation{}).Move)
	}
	expected := []ai.Direction{ai.DirRight, ai.DirRight, ai.DirRight, ai.DirRight, ai.DirNone}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("moves = %v, expected %v", got, expected)
		}
	}

	h.Command(press(core.ActionUp), ai.Observation{})
	if cmd := h.Command(press(core.ActionLeft), ai.Observation{}); cmd.Move != ai.DirLeft {
		t.Errorf("Move = %v, expected a new key to replace the heading", cmd.Move)
	}
}

func TestHumanControllerFire(t *testing.T) {
	h := NewHumanController(4)

	if cmd := h.Command(press(core.ActionFire, core.ActionDown), ai.Observation{}); !cmd.Fire || cmd.Move != ai.DirDown {
		t.Errorf("Command() = %+v, expected fire while moving down", cmd)
	}
	if cmd := h.Command(core.NewInputFrame(), ai.Observation{}); cmd.Fire {
		t.Error("Fire = true without a key press, expected one bomb per press")
	}
	if h.NeedsField() {
		t.Error("NeedsField() = true for a human")
	}
}

func TestHumanControllerMinimumHold(t *testing.T) {
	h := NewHumanController(0)
	if cmd := h.Command(press(core.ActionUp), ai.Observation{}); cmd.Move != ai.DirUp {
		t.Errorf("Move = %v, expected at least one tick of movement", cmd.Move)
	}
}

func TestCPUControllerPlays(t *testing.T) {
	g := newTestGame(t, ModeCPU, config.DefaultBomberConfig(), "#######", "#1...2#", "#######")
	c, ok := g.controllers[0].(*CPUController)
	if !ok {
		t.Fatalf("controller = %T, expected *CPUController", g.controllers[0])
	}
	if !c.NeedsField() {
		t.Error("NeedsField() = false, expected the engine to need the arena")
	}

	field := ai.BuildField(g.world(), rulesFrom(g.cfg))
	c.Command(core.NewInputFrame(), g.observe(0, field))
	if c.agent.Last.Enqueued < 2 {
		t.Errorf("Enqueued = %d, expected the search to expand past the start cell", c.agent.Last.Enqueued)
	}
}
