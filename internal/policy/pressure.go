package policy

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/sim"
)

func init() {
	registry.Register(registry.PolicyInfo{
		ID:          "pressure",
		Title:       "Max Pressure",
		Description: "Serves the axis with the most weighted waiting, with an all-red changeover",
	}, func(cfg config.CrossingConfig) sim.Policy {
		return NewPressure(cfg)
	})
}

// phases are the two conflict-free green sets.
var phases = [2][]sim.Direction{
	{sim.North, sim.South},
	{sim.East, sim.West},
}

// Pressure is a max-pressure controller over the two axis phases. After each
// hold it recomputes the pressure of both phases and keeps or switches to the
// heavier one. A phase may be re-selected at most MaxRepeat times in a row
// while the other phase has demand. Switching goes through all red until no
// vehicle of the old phase is left inside the intersection.
type Pressure struct {
	MinHold   time.Duration
	MaxRepeat int
	weights   [sim.NumCategories]float64

	current   int // Index into phases, -1 during changeover
	repeat    int
	holdUntil time.Duration
	last      time.Duration
}

// NewPressure builds the controller from configuration. Category weights are
// the scoring wait weights, so pressure tracks the score drain.
func NewPressure(cfg config.CrossingConfig) *Pressure {
	w := cfg.Scoring.WaitWeights
	p := &Pressure{
		MinHold:   time.Duration(cfg.Policy.Pressure.MinHoldSeconds * float64(time.Second)),
		MaxRepeat: cfg.Policy.Pressure.MaxRepeat,
		weights:   [sim.NumCategories]float64{w.Regular, w.Ambulance, w.Police, w.Government},
	}
	p.reset()
	return p
}

func (p *Pressure) reset() {
	p.current = -1
	p.repeat = 0
	p.holdUntil = 0
	p.last = 0
}

func (p *Pressure) Name() string { return "pressure" }

func (p *Pressure) Decide(_ context.Context, snap sim.Snapshot) ([]sim.Direction, error) {
	now := snap.Elapsed
	if now < p.last {
		// Time went backwards: a new run started.
		p.reset()
	}
	p.last = now

	if p.current >= 0 && now < p.holdUntil {
		return phases[p.current], nil
	}

	ranked := p.rank(snap)
	next := ranked[0]
	if next == p.current {
		other := ranked[1]
		if p.MaxRepeat > 0 && p.repeat >= p.MaxRepeat && p.pressure(snap, other) > 0 {
			next = other
		} else {
			p.repeat++
			p.holdUntil = now + p.MinHold
			return phases[p.current], nil
		}
	}

	if !clearFor(snap, phases[next]) {
		p.current = -1
		return nil, nil
	}
	p.current = next
	p.repeat = 1
	p.holdUntil = now + p.MinHold
	return phases[next], nil
}

// pressure sums weight x (1 + wait) over the queued vehicles of a phase.
func (p *Pressure) pressure(snap sim.Snapshot, phase int) float64 {
	var total float64
	for _, d := range phases[phase] {
		for _, e := range snap.Queue(d) {
			if e.State != sim.Queued {
				continue
			}
			w := 1.0
			if int(e.Category) < len(p.weights) {
				w = p.weights[e.Category]
			}
			total += w * (1 + e.WaitTime)
		}
	}
	return total
}

// rank orders phase indexes by pressure, heaviest first. Ties keep the
// current phase ahead.
func (p *Pressure) rank(snap sim.Snapshot) []int {
	idx := []int{0, 1}
	pressure := lo.Map(idx, func(i int, _ int) float64 { return p.pressure(snap, i) })
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := pressure[idx[a]], pressure[idx[b]]
		if pa != pb {
			return pa > pb
		}
		return idx[a] == p.current
	})
	return idx
}

// clearFor reports whether every vehicle committed inside the intersection
// belongs to the given phase. Wrecks are ignored so the controller keeps
// serving traffic around them.
func clearFor(snap sim.Snapshot, phase []sim.Direction) bool {
	for _, v := range snap.Vehicles {
		if v.State == sim.Moving && v.InIntersection && !lo.Contains(phase, v.Direction) {
			return false
		}
	}
	return true
}
