// Package policy contains the built-in traffic control policies. Each one
// registers itself with the registry at init; import the package for its
// side effects to make them available.
package policy

import (
	"context"
	"math"

	"github.com/samber/lo"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/sim"
)

// Default is the policy used when none is selected.
const Default = "rotate"

func init() {
	registry.Register(registry.PolicyInfo{
		ID:          "all-red",
		Title:       "All Red",
		Description: "Never turns a light green; the score drains away",
	}, func(config.CrossingConfig) sim.Policy {
		return sim.PolicyFunc(func(context.Context, sim.Snapshot) ([]sim.Direction, error) {
			return nil, nil
		})
	})
}

// window returns the index of the rotation window containing elapsed.
func window(snap sim.Snapshot, seconds float64) int {
	if seconds <= 0 {
		seconds = 5
	}
	return int(math.Floor(snap.Elapsed.Seconds() / seconds))
}

// count returns how many entries in a queue have category c.
func count(q []sim.QueueEntry, c sim.Category) int {
	return lo.CountBy(q, func(e sim.QueueEntry) bool { return e.Category == c })
}

// busiest returns the direction with the highest score, preferring the
// earliest direction on ties. It reports false when every score is zero.
func busiest(score func(sim.Direction) float64) (sim.Direction, bool) {
	best, bestScore := sim.North, 0.0
	for _, d := range sim.Directions {
		if s := score(d); s > bestScore {
			best, bestScore = d, s
		}
	}
	return best, bestScore > 0
}
