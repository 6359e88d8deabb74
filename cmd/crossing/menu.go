package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/platform/tui"
	"github.com/vovakirdan/crossing/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick control policies interactively",
	Long: `Start in interactive menu mode.

Pick a policy and a traffic preset, watch it run, then return to the menu
to try another. Finished runs are recorded and shown on the scoreboard.

Controls:
  Up/Down/j/k     - Choose policy
  Left/Right/h/l  - Choose traffic preset
  Enter/Space     - Start
  Tab             - Longest runs
  Q               - Quit

Examples:
  crossing menu
  crossing menu --fps 30
  crossing menu --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	base, preset, err := loadBaseConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := viewerLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		store = nil
	}

	rt := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, rt, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		rt = menuResult.Config
		preset = menuResult.Preset

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.PolicyID == "" {
			break
		}

		cfg := base
		config.ApplyPreset(&cfg, preset)

		backToMenu, runErr := tui.Run(tui.RunOptions{
			PolicyID: menuResult.PolicyID,
			Preset:   preset,
			Config:   cfg,
			Store:    store,
			Runtime:  rt,
			Logger:   logger,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", runErr)
			continue
		}
		if !backToMenu {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
