package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crossing/internal/core"
	"github.com/vovakirdan/crossing/internal/platform/tui"
	"github.com/vovakirdan/crossing/internal/policy"
	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [policy]",
	Short: "Watch a policy control the intersection",
	Long: `Run the simulation in the terminal with the given control policy.
Without an argument the default policy is used.

Controls:
  P          - Pause
  R          - Restart (after the run ended)
  B/Esc      - Leave (while paused or after the run ended)
  Ctrl+S     - Save a text screenshot to ~/.crossing/screenshots
  Q/Ctrl+C   - Quit

Traffic presets:
  light      - Sparse arrivals
  normal     - Configured arrivals
  rush       - Dense arrivals
  emergency  - Many emergency and official vehicles

Examples:
  crossing play
  crossing play pressure --traffic rush
  crossing play priority --seed 42 --log-file ./crossing.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	policyID := policy.Default
	if len(args) == 1 {
		policyID = args[0]
	}

	if !registry.Exists(policyID) {
		fmt.Fprintf(os.Stderr, "Error: unknown policy %q\n", policyID)
		fmt.Fprintln(os.Stderr, "Run 'crossing policies' to see available policies.")
		os.Exit(1)
	}

	cfg, preset, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := viewerLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	// Runs still work without history.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		store = nil
	}

	_, runErr := tui.Run(tui.RunOptions{
		PolicyID: policyID,
		Preset:   preset,
		Config:   cfg,
		Store:    store,
		Runtime:  runtimeConfig(),
		Logger:   logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running viewer: %v", runErr)
	}
}

// runtimeConfig sizes the viewer to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
