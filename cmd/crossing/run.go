package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/policy"
	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/sim"
	"github.com/vovakirdan/crossing/internal/storage"
)

var (
	flagRunPolicy  string
	flagRunDT      time.Duration
	flagRunMaxTime time.Duration
	flagRunNoSave  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a policy headless and print the summary",
	Long: `Run the simulation without a terminal viewer.

The engine is stepped with a fixed time step, so a seed always reproduces the
same run. The run stops when the score reaches zero, a fatal crash happens or
--max-time of simulated time has passed. Engine events are logged to stderr.

Examples:
  crossing run
  crossing run --policy pressure --seed 7
  crossing run --policy priority --traffic emergency --max-time 30m
  crossing run --policy schedule --config ./my-crossing.yaml --no-save`,
	Args: cobra.NoArgs,
	Run:  runHeadless,
}

func init() {
	runCmd.Flags().StringVar(&flagRunPolicy, "policy", policy.Default, "Control policy ID")
	runCmd.Flags().DurationVar(&flagRunDT, "dt", 16670*time.Microsecond, "Fixed simulation time step")
	runCmd.Flags().DurationVar(&flagRunMaxTime, "max-time", 10*time.Minute, "Stop after this much simulated time")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Do not record the run in the history database")
}

func runHeadless(_ *cobra.Command, _ []string) {
	if flagRunDT <= 0 {
		fail("--dt must be positive")
	}

	cfg, preset, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, err := newLogger(os.Stderr, "crossing")
	if err != nil {
		fail("%v", err)
	}

	p, err := registry.Create(flagRunPolicy, cfg)
	if err != nil {
		fail("%v (run 'crossing policies' to list them)", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := sim.New(cfg, p, sim.Options{Seed: seed, Logger: logger})
	for engine.Running() && engine.Summary().Elapsed < flagRunMaxTime {
		engine.Step(flagRunDT)
	}

	summary := engine.Summary()
	printSummary(summary, preset)

	if flagRunNoSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return
	}
	defer store.Close()
	if _, err := store.SaveRun(storage.RecordFromSummary(summary, string(preset))); err != nil {
		logger.Warn("could not save run", "error", err)
	}
}

func printSummary(s sim.RunSummary, preset config.TrafficPreset) {
	end := s.EndReason.String()
	if s.EndReason == sim.EndNone {
		end = "time limit"
	}

	fmt.Printf("Run summary - %s (%s traffic, seed %d)\n", s.Policy, preset, s.Seed)
	fmt.Println()
	fmt.Printf("  %-14s %s\n", "Lasted", s.Elapsed.Round(time.Millisecond))
	fmt.Printf("  %-14s %d\n", "Ticks", s.Ticks)
	fmt.Printf("  %-14s %.1f\n", "Final score", s.Score)
	fmt.Printf("  %-14s %s\n", "Ended by", end)
	fmt.Printf("  %-14s %d\n", "Spawned", s.Spawned)
	fmt.Printf("  %-14s %d\n", "Exited", s.Exited)
	fmt.Printf("  %-14s %d\n", "Crashes", s.TotalCrashes)
	for _, c := range sim.Categories {
		fmt.Printf("    %-12s %d\n", c, s.CrashesByCategory[c])
	}
	fmt.Printf("  %-14s %d\n", "Policy faults", s.PolicyFaults)
	if s.LastFault != "" {
		fmt.Printf("  %-14s %s\n", "Last fault", s.LastFault)
	}
}
