package policy

import (
	"context"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/sim"
)

func init() {
	registry.Register(registry.PolicyInfo{
		ID:          "priority",
		Title:       "Priority",
		Description: "Ambulances first, then pedestrians, police and the longest queue",
	}, func(cfg config.CrossingConfig) sim.Policy {
		return &Priority{Window: cfg.Policy.Rotation.WindowSeconds}
	})
}

// Priority serves the most valuable approach that is currently safe:
//
//  1. any wreck keeps every light red
//  2. the first direction with an ambulance
//  3. the direction with the most waiting pedestrians
//  4. the direction with the most police cars
//  5. the longest queue
//  6. the rotation fallback
//
// Every candidate is gated by the advisory safety check; when nothing is
// safe all lights stay red.
type Priority struct {
	Window float64 // Seconds, for the rotation fallback
}

func (p *Priority) Name() string { return "priority" }

func (p *Priority) Decide(_ context.Context, snap sim.Snapshot) ([]sim.Direction, error) {
	if snap.HasActiveCrashes() {
		return nil, nil
	}

	for _, d := range sim.Directions {
		if count(snap.Queue(d), sim.Ambulance) > 0 && snap.IsSafe(d) {
			return []sim.Direction{d}, nil
		}
	}

	if d, ok := busiest(func(d sim.Direction) float64 {
		return float64(waitingPedestrians(snap, d))
	}); ok && snap.IsSafe(d) {
		return []sim.Direction{d}, nil
	}

	if d, ok := busiest(func(d sim.Direction) float64 {
		return float64(count(snap.Queue(d), sim.Police))
	}); ok && snap.IsSafe(d) {
		return []sim.Direction{d}, nil
	}

	if d, ok := busiest(func(d sim.Direction) float64 {
		return float64(len(snap.Queue(d)))
	}); ok && snap.IsSafe(d) {
		return []sim.Direction{d}, nil
	}

	d := sim.Directions[(window(snap, p.Window)*7)%sim.NumDirections]
	if snap.IsSafe(d) {
		return []sim.Direction{d}, nil
	}
	return nil, nil
}

func waitingPedestrians(snap sim.Snapshot, d sim.Direction) int {
	n := 0
	for _, ped := range snap.Pedestrians {
		if ped.Direction == d && (ped.State == "crossing" || ped.State == "queued") {
			n++
		}
	}
	return n
}
