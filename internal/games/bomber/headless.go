package bomber

import (
	"context"
	"fmt"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

// MatchOutcome summarizes a finished headless match.
type MatchOutcome struct {
	Seed     int64
	Winner   core.PlayerID // PlayerNone for a draw or a timeout
	Ticks    int
	Power1   int
	Power2   int
	TimedOut bool
}

// RunHeadless plays a CPU vs CPU match without a screen until one side
// dies or maxTicks pass. maxTicks <= 0 means no limit.
func RunHeadless(ctx context.Context, cfg config.BomberConfig, seed int64, maxTicks int) (MatchOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return MatchOutcome{}, err
	}

	g := NewWithConfig(ModeCPU, cfg)
	g.Reset(core.RuntimeConfig{Seed: seed, TickRate: 60})
	idle := core.NewMultiInputFrame()

	for !g.over {
		if maxTicks > 0 && g.tick >= maxTicks {
			break
		}
		if g.tick%256 == 0 {
			if err := ctx.Err(); err != nil {
				return MatchOutcome{}, fmt.Errorf("bomber: match %d interrupted at tick %d: %w", seed, g.tick, err)
			}
		}
		g.StepMulti(idle)
	}

	st := g.State()
	return MatchOutcome{
		Seed:     seed,
		Winner:   st.Winner,
		Ticks:    st.Tick,
		Power1:   st.Score,
		Power2:   st.Score2,
		TimedOut: !st.GameOver,
	}, nil
}
