package policy

import (
	"context"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/sim"
)

func init() {
	registry.Register(registry.PolicyInfo{
		ID:          "rotate",
		Title:       "Rotate",
		Description: "One direction per window in a scrambled order, no safety checks",
	}, func(cfg config.CrossingConfig) sim.Policy {
		return &Rotate{Window: cfg.Policy.Rotation.WindowSeconds}
	})
	registry.Register(registry.PolicyInfo{
		ID:          "safe-rotate",
		Title:       "Safe Rotate",
		Description: "Cycles north, south, east, west; holds red until the box is safe",
	}, func(cfg config.CrossingConfig) sim.Policy {
		return &SafeRotate{Window: cfg.Policy.Rotation.WindowSeconds}
	})
}

// Rotate gives one direction green per window. The order comes from
// index = (window * 7) mod 4, which visits every direction without regard
// to what is inside the intersection.
type Rotate struct {
	Window float64 // Seconds
}

func (r *Rotate) Name() string { return "rotate" }

func (r *Rotate) Decide(_ context.Context, snap sim.Snapshot) ([]sim.Direction, error) {
	i := (window(snap, r.Window) * 7) % sim.NumDirections
	return []sim.Direction{sim.Directions[i]}, nil
}

// SafeRotate cycles the directions in canonical order and only turns a
// light green when the advisory check allows it.
type SafeRotate struct {
	Window float64 // Seconds
}

func (r *SafeRotate) Name() string { return "safe-rotate" }

func (r *SafeRotate) Decide(_ context.Context, snap sim.Snapshot) ([]sim.Direction, error) {
	d := sim.Directions[window(snap, r.Window)%sim.NumDirections]
	if !snap.IsSafe(d) {
		return nil, nil
	}
	return []sim.Direction{d}, nil
}
