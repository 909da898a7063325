package ai

// Weights are the tunable scoring constants of the engine.
type Weights struct {
	// DistanceWeight is the penalty per hop from the agent.
	DistanceWeight int
	// PowerUpScore is added on cells holding a power-up.
	PowerUpScore int
	// BreakWallScore is earned per brick a viable bomb would break.
	BreakWallScore int
	// StressWeight scales the opponent stress increase of a viable bomb.
	StressWeight int
	// BlockadeTimeout is how many ticks the opponent's cell stays off limits
	// after the agent bombs its own cell.
	BlockadeTimeout int
	// StressRadius bounds the opponent stress exploration.
	StressRadius int
	// MaxStuckPressure caps State.StuckPressure. 0 leaves it unbounded.
	MaxStuckPressure int
}

// DefaultWeights returns the reference tuning.
func DefaultWeights() Weights {
	return Weights{
		DistanceWeight:  1,
		PowerUpScore:    30,
		BreakWallScore:  10,
		StressWeight:    1,
		BlockadeTimeout: 60,
		StressRadius:    DefaultStressRadius,
	}
}

// State is the memory an agent carries from one tick to the next.
// Each agent owns exactly one State; it is never shared.
type State struct {
	// StuckPressure grows while the agent asks to move but does not.
	StuckPressure int
	// BlockadeTimer counts down the ticks the opponent's cell is avoided.
	BlockadeTimer int
	// LastPosition is the agent's world position on the previous tick.
	LastPosition Point
	// WantedToMove is true if the previous decision was not DirNone.
	WantedToMove bool
}

// observeMovement updates StuckPressure from the position the resolver
// actually produced for the previous decision.
func (s *State) observeMovement(pos Point, maxPressure int) {
	if s.WantedToMove && pos == s.LastPosition {
		if maxPressure <= 0 || s.StuckPressure < maxPressure {
			s.StuckPressure++
		}
	} else if s.StuckPressure > 0 {
		s.StuckPressure--
	}
}

// observeFire arms or decays the blockade timer.
func (s *State) observeFire(fire bool, timeout int) {
	if fire {
		s.BlockadeTimer = timeout
	} else if s.BlockadeTimer > 0 {
		s.BlockadeTimer--
	}
}
