package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [policy]",
	Short: "Show the longest recorded runs",
	Long: `Display the longest recorded runs, for one policy or for all of them.
Every run ends at zero, so runs are ranked by how long they lasted.

Examples:
  crossing scores
  crossing scores pressure
  crossing scores rotate --limit 5
  crossing scores rotate --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs of the given policy")
}

func runScores(_ *cobra.Command, args []string) {
	policyID := ""
	title := "all policies"
	if len(args) == 1 {
		policyID = args[0]
		title = policyID
		if !registry.Exists(policyID) {
			fail("unknown policy %q", policyID)
		}
	}
	if flagScoresClear && policyID == "" {
		fail("--clear needs a policy")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run history: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(policyID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared runs for %s.\n", policyID)
		return
	}

	runs, err := store.TopRuns(policyID, flagScoresLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Longest runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'crossing run' or 'crossing play' to record the first one!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-9s  %-8s  %-7s  %-14s  %s\n", "Rank", "Policy", "Traffic", "Time", "Crashes", "End", "Date")
	fmt.Printf("  %-4s  %-12s  %-9s  %-8s  %-7s  %-14s  %s\n", "----", "------", "-------", "----", "-------", "---", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-9s  %-8s  %-7d  %-14s  %s\n",
			i+1, r.Policy, r.Preset, r.Elapsed().Round(100*time.Millisecond), r.TotalCrashes, r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if policyID == "" {
		return
	}
	stats, err := store.GetPolicyStats(policyID)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %s  Average: %s  Fatal: %d\n",
			stats.Runs, stats.BestElapsed, stats.AvgElapsed.Round(100*time.Millisecond), stats.FatalRuns)
	}
}
