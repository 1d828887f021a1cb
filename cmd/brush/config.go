package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brush/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML.

Examples:
  brush config > ~/.brush/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}
