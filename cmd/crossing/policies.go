package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crossing/internal/policy"
	"github.com/vovakirdan/crossing/internal/registry"
)

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List all built-in control policies",
	Long:  `Shows every control policy registered with the simulator.`,
	Args:  cobra.NoArgs,
	Run:   runPolicies,
}

func runPolicies(_ *cobra.Command, _ []string) {
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Println("No policies available.")
		return
	}

	fmt.Println("Available policies:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range policies {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, p := range policies {
		marker := ""
		if p.ID == policy.Default {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, p.ID, p.Description, marker)
	}

	fmt.Println()
	fmt.Println("Run 'crossing play <id>' to watch a policy.")
}
