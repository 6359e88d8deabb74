// crossing simulates a four-way intersection driven by a pluggable traffic
// light control policy.
//
// Usage:
//
//	crossing run [--policy <id>]   - Run headless and print the summary
//	crossing play [<policy>]       - Watch a policy in the terminal
//	crossing menu                  - Pick policies interactively
//	crossing policies              - List built-in policies
//	crossing scores [<policy>]     - Show the longest recorded runs
//	crossing serve                 - Start SSH server for remote viewing
//	crossing config                - Print the default configuration
//
// Global flags:
//
//	--fps <rate>        - Viewer tick rate (default: 60)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Run history database (default: ~/.crossing/runs.db)
//	--config <path>     - Custom configuration YAML
//	--traffic <preset>  - Traffic preset: light, normal, rush, emergency
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Log destination for the terminal viewer
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import built-in policies to register them
	_ "github.com/vovakirdan/crossing/internal/policy"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagTraffic  string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crossing",
	Short: "Crossing - a traffic light control playground",
	Long: `Crossing simulates a four-way intersection. Vehicles arrive from every
direction, a control policy decides which approaches get a green light, and
the score drains while vehicles wait or wrecks block the box. A run ends when
the score reaches zero or an ambulance is hit.

Available commands:
  run       - Run a policy headless and print the summary
  play      - Watch a policy in the terminal
  menu      - Interactive policy picker
  policies  - Show all built-in policies
  scores    - View the longest recorded runs
  serve     - Start SSH server for remote viewing
  config    - Print the default configuration

Examples:
  crossing run --policy pressure --seed 7
  crossing play priority --traffic rush
  crossing menu
  crossing serve --ssh :2222
  crossing scores rotate`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Viewer tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.crossing/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagTraffic, "traffic", "normal", "Traffic preset: light, normal, rush, emergency")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write viewer logs to this file (discarded if empty)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
