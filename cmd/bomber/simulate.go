package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber"
	"github.com/vovakirdan/tui-bomber/internal/multiplayer"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	flagSimMatches  int
	flagSimParallel int
	flagSimMaxTicks int
	flagSimSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run CPU vs CPU matches without a screen",
	Long: `Play a batch of CPU vs CPU matches as fast as possible and print
who won. Match i uses seed --seed + i, so a batch is reproducible when a
seed is given. Useful for tuning the ai section of bomber.yaml.

Examples:
  bomber simulate
  bomber simulate --matches 100 --parallel 8
  bomber simulate --seed 1 --max-ticks 3600 --save
  bomber simulate --config ./aggressive.yaml --log-level info`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimMatches, "matches", 10, "Number of matches to play")
	simulateCmd.Flags().IntVar(&flagSimParallel, "parallel", 4, "Matches played at the same time")
	simulateCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 7200, "Tick limit per match, a draw when reached (0 = no limit)")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the matches in the history database")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if flagSimMatches <= 0 || flagSimParallel <= 0 {
		return errors.New("--matches and --parallel must be positive")
	}

	cfg, err := config.LoadBomber(flagConfig)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open match database: %w", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	batch := uuid.NewString()
	batchLog := logger.With("batch", batch[:8])
	batchLog.Info("simulating", "matches", flagSimMatches, "parallel", flagSimParallel, "seed", base)

	start := time.Now()
	outcomes := make([]bomber.MatchOutcome, flagSimMatches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(flagSimParallel)
	for i := range outcomes {
		g.Go(func() error {
			out, err := bomber.RunHeadless(ctx, cfg, base+int64(i), flagSimMaxTicks)
			if err != nil {
				return err
			}
			outcomes[i] = out
			batchLog.Info("match done",
				"seed", out.Seed,
				"winner", out.Winner,
				"ticks", out.Ticks,
				"timeout", out.TimedOut,
			)
			if store != nil {
				if _, err := store.SaveMatch(simulatedMatch(out)); err != nil {
					return fmt.Errorf("cannot save match %d: %w", out.Seed, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSummary(outcomes, time.Since(start))
	return nil
}

// simulatedMatch turns a headless outcome into a history row.
func simulatedMatch(out bomber.MatchOutcome) storage.Match {
	reason := multiplayer.MatchEndReasonCompleted
	if out.TimedOut {
		reason = multiplayer.MatchEndReasonTimeout
	}
	return storage.Match{
		Mode:      string(bomber.ModeCPU),
		Seed:      out.Seed,
		Player1:   "cpu",
		Player2:   "cpu",
		Winner:    out.Winner,
		Ticks:     out.Ticks,
		Power1:    out.Power1,
		Power2:    out.Power2,
		EndReason: reason.String(),
	}
}

// simSummary tallies a batch of headless matches.
type simSummary struct {
	wins1, wins2, draws, timeouts int
	totalTicks                    int
}

func summarize(outcomes []bomber.MatchOutcome) simSummary {
	var s simSummary
	for _, o := range outcomes {
		switch o.Winner {
		case core.Player1:
			s.wins1++
		case core.Player2:
			s.wins2++
		default:
			s.draws++
		}
		if o.TimedOut {
			s.timeouts++
		}
		s.totalTicks += o.Ticks
	}
	return s
}

func printSummary(outcomes []bomber.MatchOutcome, elapsed time.Duration) {
	s := summarize(outcomes)

	fmt.Printf("  %-12s  %-6s  %6s  %s\n", "Seed", "Winner", "Ticks", "Power")
	fmt.Printf("  %-12s  %-6s  %6s  %s\n", "----", "------", "-----", "-----")
	for _, o := range outcomes {
		winner := winnerLabel(o.Winner)
		if o.TimedOut {
			winner = "time"
		}
		fmt.Printf("  %-12d  %-6s  %6d  %d/%d\n", o.Seed, winner, o.Ticks, o.Power1, o.Power2)
	}

	fmt.Println()
	fmt.Printf("%d matches in %s: P1 %d, P2 %d, draws %d (%d timed out), avg %d ticks\n",
		len(outcomes),
		elapsed.Round(time.Millisecond),
		s.wins1, s.wins2, s.draws, s.timeouts,
		s.totalTicks/len(outcomes),
	)
}
