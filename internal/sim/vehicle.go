package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/core"
)

// Vehicle is one car on the field. Direction and category never change after
// creation; crash metadata is set once and never cleared.
type Vehicle struct {
	ID        int
	Category  Category
	Direction Direction
	State     VehicleState

	Pos         core.Vec
	Speed       float64
	TargetSpeed float64
	Heading     float64 // Radians; 0 points up the screen

	SpawnTime time.Duration
	WaitTime  float64 // Seconds spent queued

	Crashed       bool
	CrashTime     time.Duration
	CrashRotation float64 // Radians of visual disorder added to Heading
}

// layout is the geometry derived from the field configuration.
type layout struct {
	field        core.Bounds
	intersection core.Bounds
	exit         core.Bounds
	laneOffset   float64
	spawnInset   float64
	stopDistance float64
}

func newLayout(f config.FieldConfig) layout {
	field := core.Bounds{Left: 0, Top: 0, Right: f.Width, Bottom: f.Height}
	return layout{
		field: field,
		intersection: core.Bounds{
			Left:   f.Intersection.Left,
			Top:    f.Intersection.Top,
			Right:  f.Intersection.Right,
			Bottom: f.Intersection.Bottom,
		},
		exit:         field.Expand(f.ExitMargin),
		laneOffset:   f.LaneOffset,
		spawnInset:   f.SpawnInset,
		stopDistance: f.StopDistance,
	}
}

// entry returns the spawn position and heading for a direction. Each
// direction drives in its own lane, offset from the road's center line.
func (l layout) entry(d Direction) (core.Vec, float64) {
	c := l.field.Center()
	switch d {
	case South:
		return core.Vec{X: c.X + l.laneOffset, Y: l.field.Bottom - l.spawnInset}, 0
	case East:
		return core.Vec{X: l.field.Right - l.spawnInset, Y: c.Y + l.laneOffset}, math.Pi / 2
	case West:
		return core.Vec{X: l.field.Left + l.spawnInset, Y: c.Y - l.laneOffset}, -math.Pi / 2
	default: // North
		return core.Vec{X: c.X - l.laneOffset, Y: l.field.Top + l.spawnInset}, math.Pi
	}
}

// inIntersection reports whether p lies strictly inside the intersection box.
func (l layout) inIntersection(p core.Vec) bool {
	return l.intersection.ContainsOpen(p)
}

// inStopZone reports whether a vehicle at p, travelling in d, is in the band
// just before the intersection where it still has to obey the light.
func (l layout) inStopZone(d Direction, p core.Vec) bool {
	box := l.intersection
	switch d {
	case North: // Moving down, approaching from the top
		return p.Y < box.Top && p.Y > box.Top-l.stopDistance
	case South: // Moving up, approaching from the bottom
		return p.Y > box.Bottom && p.Y < box.Bottom+l.stopDistance
	case East: // Moving left, approaching from the right
		return p.X > box.Right && p.X < box.Right+l.stopDistance
	case West: // Moving right, approaching from the left
		return p.X < box.Left && p.X > box.Left-l.stopDistance
	}
	return false
}

// hasExited reports whether p is beyond the exit margin around the field.
func (l layout) hasExited(p core.Vec) bool {
	e := l.exit
	return p.X < e.Left || p.X > e.Right || p.Y < e.Top || p.Y > e.Bottom
}

// travel returns the unit vector of motion for a direction.
func travel(d Direction) core.Vec {
	switch d {
	case South:
		return core.Vec{X: 0, Y: -1}
	case East:
		return core.Vec{X: -1, Y: 0}
	case West:
		return core.Vec{X: 1, Y: 0}
	default: // North
		return core.Vec{X: 0, Y: 1}
	}
}

// distanceAhead returns the signed distance from v to o along v's direction
// of travel. Positive values mean o is in front of v.
func distanceAhead(v *Vehicle, o core.Vec) float64 {
	t := travel(v.Direction)
	return (o.X-v.Pos.X)*t.X + (o.Y-v.Pos.Y)*t.Y
}
