package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-bomber/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the bomber configuration",
	Long: `Print the built-in bomber.yaml, a starting point for a custom config.

With --effective, prints the configuration a match would use after
applying --config or ~/.bomber/configs/bomber.yaml.

Examples:
  bomber config > ~/.bomber/configs/bomber.yaml
  bomber config --effective --config ./my-bomber.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the loaded configuration instead of the defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagEffective {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadBomber(flagConfig)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
