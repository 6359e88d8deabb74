package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crossing/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default configuration as YAML.

Save it to ~/.crossing/configs/crossing.yaml or ./configs/crossing.yaml and
edit the keys you want to change; missing keys keep their defaults.

Examples:
  crossing config > ~/.crossing/configs/crossing.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := os.Stdout.Write(config.DefaultYAML()); err != nil {
			fail("%v", err)
		}
	},
}
