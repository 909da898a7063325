package bomber

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
)

// Command is what a controller asks its player to do on one tick.
type Command struct {
	Move ai.Direction
	Fire bool
}

// Controller drives one player. Humans read the input frame, the CPU reads
// the observation.
type Controller interface {
	Command(in core.InputFrame, obs ai.Observation) Command
	// NeedsField reports whether obs.Field must be filled in.
	NeedsField() bool
}

// HumanController turns key presses into movement. Terminals report key
// presses only, so a direction key keeps the player walking for hold ticks
// (one cell) unless another direction replaces it.
type HumanController struct {
	hold    int
	heading ai.Direction
	left    int
}

// NewHumanController creates a controller that walks hold ticks per key press.
func NewHumanController(hold int) *HumanController {
	return &HumanController{hold: max(1, hold)}
}

// Command implements Controller.
func (h *HumanController) Command(in core.InputFrame, _ ai.Observation) Command {
	dir := ai.DirNone
	switch {
	case in.Has(core.ActionUp):
		dir = ai.DirUp
	case in.Has(core.ActionDown):
		dir = ai.DirDown
	case in.Has(core.ActionLeft):
		dir = ai.DirLeft
	case in.Has(core.ActionRight):
		dir = ai.DirRight
	}
	if dir != ai.DirNone {
		h.heading = dir
		h.left = h.hold
	}

	cmd := Command{Fire: in.Has(core.ActionFire)}
	if h.left > 0 {
		h.left--
		cmd.Move = h.heading
	}
	return cmd
}

// NeedsField implements Controller.
func (h *HumanController) NeedsField() bool {
	return false
}

// CPUController lets the decision engine play.
type CPUController struct {
	agent *ai.Agent
	log   *log.Logger
}

// NewCPUController creates an engine-driven controller with its own state.
func NewCPUController(w ai.Weights, logger *log.Logger) *CPUController {
	return &CPUController{agent: ai.NewAgent(w), log: logger}
}

// Command implements Controller.
func (c *CPUController) Command(_ core.InputFrame, obs ai.Observation) Command {
	d := c.agent.Decide(obs)
	if c.log != nil {
		c.log.Debug("decision",
			"move", d.Move,
			"fire", d.Fire,
			"best", c.agent.Last.Best,
			"score", c.agent.Last.Score,
			"enqueued", c.agent.Last.Enqueued,
			"stuck", c.agent.State.StuckPressure,
			"blockade", c.agent.State.BlockadeTimer,
		)
	}
	return Command{Move: d.Move, Fire: d.Fire}
}

// NeedsField implements Controller.
func (c *CPUController) NeedsField() bool {
	return true
}

// State exposes the engine memory, mostly for tests and debugging.
func (c *CPUController) State() ai.State {
	return c.agent.State
}
