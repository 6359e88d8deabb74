package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/samber/lo"

	"github.com/vovakirdan/crossing/internal/config"
)

// CrashEvent describes one vehicle crashing.
type CrashEvent struct {
	VehicleID int
	Category  Category
	Direction Direction
	// OtherID is the vehicle or wreck it hit.
	OtherID int
	// Cascade is set when the vehicle drove into an existing wreck.
	Cascade bool
	Penalty float64
	Fatal   bool
	At      time.Duration
}

// collider detects conflicts inside the intersection and resolves crashes.
type collider struct {
	radius    float64
	rotation  float64 // Full rotation range in radians, centered on zero
	penalties [NumCategories]float64
	rng       *rand.Rand
}

func newCollider(crash config.CrashConfig, scoring config.ScoringConfig, rng *rand.Rand) *collider {
	return &collider{
		radius:    crash.DetectionRadius,
		rotation:  crash.RotationRangeDeg * math.Pi / 180,
		penalties: categoryTable(scoring.CrashPenalties),
		rng:       rng,
	}
}

// candidates selects the non-crashed moving vehicles inside the box.
func (c *collider) candidates(st *State, l layout) []*Vehicle {
	return lo.Filter(st.Vehicles, func(v *Vehicle, _ int) bool {
		return !v.Crashed && v.State == Moving && l.inIntersection(v.Pos)
	})
}

// detect runs the primary pairwise pass followed by the cascade pass.
func (c *collider) detect(st *State, l layout, now time.Duration) []CrashEvent {
	var events []CrashEvent

	moving := c.candidates(st, l)
	for i := 0; i < len(moving); i++ {
		for j := i + 1; j < len(moving); j++ {
			a, b := moving[i], moving[j]
			if a.Crashed || b.Crashed {
				continue
			}
			if !a.Direction.Conflicts(b.Direction) {
				continue
			}
			if a.Pos.Dist(b.Pos) >= c.radius {
				continue
			}
			events = append(events, c.crash(st, a, b.ID, false, now))
			events = append(events, c.crash(st, b, a.ID, false, now))
		}
	}

	for _, v := range c.candidates(st, l) {
		for _, w := range st.Crashed {
			if v.Pos.Dist(w.Pos) < c.radius {
				events = append(events, c.crash(st, v, w.ID, true, now))
				break
			}
		}
	}
	return events
}

// crash freezes v, records it and applies its one-time penalty.
func (c *collider) crash(st *State, v *Vehicle, other int, cascade bool, now time.Duration) CrashEvent {
	v.Crashed = true
	v.State = Crashed
	v.Speed = 0
	v.TargetSpeed = 0
	v.CrashTime = now
	if c.rotation > 0 {
		v.CrashRotation = (c.rng.Float64() - 0.5) * c.rotation
	}
	st.Crashed = append(st.Crashed, v)
	st.CrashesByCategory[v.Category.index()]++
	st.TotalCrashes++

	penalty := c.penalties[v.Category.index()]
	fatal := applyPenalty(st, penalty)
	return CrashEvent{
		VehicleID: v.ID,
		Category:  v.Category,
		Direction: v.Direction,
		OtherID:   other,
		Cascade:   cascade,
		Penalty:   penalty,
		Fatal:     fatal,
		At:        now,
	}
}
