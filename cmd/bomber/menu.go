package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start bomber with a mode picker menu",
	Long: `Start bomber in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Leave a finished match with B or Esc to come back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab/H        - Match history
  Q            - Quit

Examples:
  bomber menu
  bomber menu --fps 30
  bomber menu --db ./bomber.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	name := playerName()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Keep any size change
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			goBack, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			return fmt.Errorf("cannot create game: %w", err)
		}

		// Fresh arena for every match unless a seed was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, cfg, name, logger)
		if err != nil {
			return fmt.Errorf("cannot run game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
