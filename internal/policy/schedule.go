package policy

import (
	"context"
	"math"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/sim"
)

func init() {
	registry.Register(registry.PolicyInfo{
		ID:          "schedule",
		Title:       "Fixed Schedule",
		Description: "Cycles the phases listed under policy.schedule in the config",
	}, func(cfg config.CrossingConfig) sim.Policy {
		return NewSchedule(cfg.Policy.Schedule)
	})
}

// NewSchedule returns a fixed-time plan. Each phase names its green
// directions as tokens; an unknown token makes that phase a malformed result,
// which the engine turns into all red for as long as the phase lasts.
func NewSchedule(plan []config.SchedulePhase) sim.TokenPolicyFunc {
	var cycle float64
	for _, ph := range plan {
		if ph.Seconds > 0 {
			cycle += ph.Seconds
		}
	}
	return func(_ context.Context, snap sim.Snapshot) ([]string, error) {
		if cycle <= 0 {
			return nil, nil
		}
		t := math.Mod(snap.Elapsed.Seconds(), cycle)
		for _, ph := range plan {
			if ph.Seconds <= 0 {
				continue
			}
			if t < ph.Seconds {
				return ph.Green, nil
			}
			t -= ph.Seconds
		}
		return nil, nil
	}
}
