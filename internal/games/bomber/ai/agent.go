package ai

// Direction is a requested movement.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the unit offset of the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Observation is what an agent sees on one tick.
// Self and Opponent are world positions (CellSize units per cell).
type Observation struct {
	Self          Point
	Opponent      Point
	CellSize      int
	Power         int
	OpponentAlive bool
	// Field is shared between agents and must not be modified.
	Field *Field
}

// CellOf rounds a world position to the cell it mostly covers.
func CellOf(pos Point, cellSize int) Point {
	return Point{
		X: (pos.X + cellSize/2) / cellSize,
		Y: (pos.Y + cellSize/2) / cellSize,
	}
}

// Decision is the engine's output for one tick.
type Decision struct {
	Move Direction
	Fire bool
}

// Trace carries the internals of a decision for logging.
type Trace struct {
	Best     Point
	Score    int
	Enqueued int
}

// Decide runs one tick of the engine for the agent owning st.
// It reads obs.Field only through a private clone.
func Decide(obs Observation, st *State, w Weights) Decision {
	d, _ := decide(obs, st, w)
	return d
}

func decide(obs Observation, st *State, w Weights) (Decision, Trace) {
	st.observeMovement(obs.Self, w.MaxStuckPressure)

	self := CellOf(obs.Self, obs.CellSize)
	opponent := CellOf(obs.Opponent, obs.CellSize)

	f := obs.Field.Clone()
	res := Search(f, SearchInput{
		Self:          self,
		Opponent:      opponent,
		Power:         obs.Power,
		OpponentAlive: obs.OpponentAlive,
		StuckPressure: st.StuckPressure,
		Blockade:      st.BlockadeTimer > 0,
		Weights:       w,
	})

	fire := res.Best == self && res.Fire
	st.observeFire(fire, w.BlockadeTimeout)

	step := res.Best
	for {
		prev := f.Cell(step).Prev
		if prev == NoPoint || prev == self {
			break
		}
		step = prev
	}

	move := towards(obs.Self, Point{X: step.X * obs.CellSize, Y: step.Y * obs.CellSize})

	st.WantedToMove = move != DirNone
	st.LastPosition = obs.Self

	return Decision{Move: move, Fire: fire}, Trace{Best: res.Best, Score: res.Score, Enqueued: res.Enqueued}
}

// towards picks the direction from pos to target, testing right, left, up
// and down in that order.
func towards(pos, target Point) Direction {
	switch {
	case target.X > pos.X:
		return DirRight
	case target.X < pos.X:
		return DirLeft
	case target.Y < pos.Y:
		return DirUp
	case target.Y > pos.Y:
		return DirDown
	default:
		return DirNone
	}
}

// Agent bundles a Decision State with the weights it decides with.
type Agent struct {
	State   State
	Weights Weights

	// Last holds the trace of the most recent decision.
	Last Trace
}

// NewAgent returns an agent with fresh state.
func NewAgent(w Weights) *Agent {
	return &Agent{Weights: w}
}

// Decide runs one tick for this agent.
func (a *Agent) Decide(obs Observation) Decision {
	d, tr := decide(obs, &a.State, a.Weights)
	a.Last = tr
	return d
}
