// bomber is a Bomberman-style arena game for the terminal with a CPU
// opponent, local two-player duels and online matches over SSH.
//
// Usage:
//
//	bomber list              - List game modes
//	bomber play [mode]       - Play a mode (default: bomber, you vs the CPU)
//	bomber menu              - Start menu to pick modes interactively
//	bomber history [mode]    - Show recent matches and the win tally
//	bomber serve             - Start SSH server for remote and online play
//	bomber simulate          - Run CPU vs CPU matches without a screen
//	bomber config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible arenas
//	--db <path>          - Set database path (default: ~/.bomber/bomber.db)
//	--config <path>      - Use a custom bomber.yaml
//	--log-level <level>  - debug, info, warn or error (default: warn)
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/games/bomber"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// logger is configured from the global flags before any command runs.
var logger = log.Default()

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bomber",
	Short: "Bomber - blow up your opponent in the terminal",
	Long: `Bomber is a terminal arena game: drop bombs, break bricks,
collect power-ups and catch your opponent in a blast.

Available commands:
  list      - Show all game modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  history   - Recent matches and win tally
  serve     - Start SSH server for remote and online play
  simulate  - Run CPU vs CPU matches headless
  config    - Print the default configuration

Examples:
  bomber play
  bomber play bomber_duel
  bomber menu
  bomber serve --ssh :2222
  bomber simulate --matches 20 --parallel 4`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bomber/bomber.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom bomber.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

var logFile io.Closer

// setup builds the logger and hands it, with the config path, to the game.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bomber",
		Level:           level,
	})
	log.SetDefault(logger)

	bomber.SetLogger(logger.WithPrefix("cpu"))
	bomber.SetConfigPath(flagConfig)
	return nil
}

func closeLog() {
	if logFile != nil {
		//nolint:errcheck // Exiting anyway
		logFile.Close()
	}
}
