package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Show recent matches and the win tally",
	Long: `Display the win tally for every mode, or the most recent matches
of one mode.

Examples:
  bomber history
  bomber history bomber_duel
  bomber history bomber_cpu --limit 50
  bomber history bomber --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded matches of the mode")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open match database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagHistoryClear {
			return errors.New("--clear needs a mode")
		}
		return printTallies(store)
	}

	mode := args[0]
	if !registry.Exists(mode) && mode != string(bomber.ModeOnline) {
		return fmt.Errorf("unknown mode %q, run 'bomber list' to see available modes", mode)
	}

	if flagHistoryClear {
		if err := store.ClearMatches(mode); err != nil {
			return fmt.Errorf("cannot clear matches: %w", err)
		}
		fmt.Printf("Cleared the history of %s.\n", mode)
		return nil
	}
	return printMatches(store, mode)
}

// historyModes lists every mode that can have recorded matches.
func historyModes() []string {
	var modes []string
	for _, g := range registry.List() {
		modes = append(modes, g.ID)
	}
	return append(modes, string(bomber.ModeOnline))
}

func printTallies(store *storage.Store) error {
	fmt.Printf("  %-14s  %7s  %6s  %6s  %5s\n", "Mode", "Matches", "P1", "P2", "Draws")
	fmt.Printf("  %-14s  %7s  %6s  %6s  %5s\n", "----", "-------", "--", "--", "-----")

	for _, mode := range historyModes() {
		t, err := store.Tally(mode)
		if err != nil {
			return fmt.Errorf("cannot read tally: %w", err)
		}
		fmt.Printf("  %-14s  %7d  %6d  %6d  %5d\n", mode, t.Matches, t.Wins1, t.Wins2, t.Draws)
	}
	return nil
}

func printMatches(store *storage.Store, mode string) error {
	matches, err := store.RecentMatches(mode, flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("cannot read matches: %w", err)
	}

	fmt.Printf("Recent matches - %s\n", mode)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'bomber play %s' to record the first one!\n", mode)
		return nil
	}

	fmt.Printf("  %-16s  %-12s  %-12s  %-8s  %6s  %s\n", "Date", "Player 1", "Player 2", "Winner", "Time", "End")
	fmt.Printf("  %-16s  %-12s  %-12s  %-8s  %6s  %s\n", "----", "--------", "--------", "------", "----", "---")

	for _, m := range matches {
		fmt.Printf("  %-16s  %-12s  %-12s  %-8s  %6s  %s\n",
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.Player1,
			m.Player2,
			winnerLabel(m.Winner),
			formatTicks(m.Ticks),
			m.EndReason,
		)
	}

	t, err := store.Tally(mode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Total: %d matches, P1 %d, P2 %d, draws %d\n", t.Matches, t.Wins1, t.Wins2, t.Draws)
	}
	return nil
}

func winnerLabel(p core.PlayerID) string {
	switch p {
	case core.Player1:
		return "P1"
	case core.Player2:
		return "P2"
	default:
		return "draw"
	}
}

// formatTicks shows a tick count as m:ss at 60 ticks per second.
func formatTicks(ticks int) string {
	secs := ticks / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
