package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/crossing/internal/config"
)

// kinematics holds the per-vehicle motion parameters.
type kinematics struct {
	maxSpeed     float64
	acceleration float64
	deceleration float64
	safeDistance float64
	refFrame     float64 // Milliseconds
}

func newKinematics(cfg config.VehicleConfig) kinematics {
	ref := cfg.ReferenceFrameMS
	if ref <= 0 {
		ref = 1000.0 / 60.0
	}
	return kinematics{
		maxSpeed:     cfg.MaxSpeed,
		acceleration: cfg.Acceleration,
		deceleration: cfg.Deceleration,
		safeDistance: cfg.SafeDistance,
		refFrame:     ref,
	}
}

// accelerate moves speed up toward the target, never above maxSpeed.
func (k kinematics) accelerate(v *Vehicle) {
	target := math.Min(v.TargetSpeed, k.maxSpeed)
	v.Speed = math.Min(v.Speed+k.acceleration, target)
	if v.Speed < 0 {
		v.Speed = 0
	}
}

// decelerate brakes toward a stop.
func (k kinematics) decelerate(v *Vehicle) {
	v.Speed = math.Max(v.Speed-k.deceleration, 0)
}

// pathClear reports whether nothing blocks v within the safe distance ahead.
// Obstacles are same-direction vehicles that have not crashed and every
// wreck regardless of direction.
func (k kinematics) pathClear(v *Vehicle, st *State) bool {
	for _, o := range st.Crashed {
		if o == v {
			continue
		}
		if d := distanceAhead(v, o.Pos); d > 0 && d < k.safeDistance {
			return false
		}
	}
	for _, o := range st.Vehicles {
		if o == v || o.Crashed || o.Direction != v.Direction {
			continue
		}
		if d := distanceAhead(v, o.Pos); d > 0 && d < k.safeDistance {
			return false
		}
	}
	return true
}

// advance runs the state machine and kinematics for every active vehicle and
// removes vehicles that leave the field. It returns the number that exited.
func (k kinematics) advance(st *State, l layout, dt time.Duration) int {
	seconds := dt.Seconds()
	scale := float64(dt) / float64(time.Millisecond) / k.refFrame

	kept := st.Vehicles[:0]
	exited := 0
	for _, v := range st.Vehicles {
		if v.Crashed {
			kept = append(kept, v)
			continue
		}
		if v.State == Queued {
			v.WaitTime += seconds
		}
		k.update(v, st, l)

		dir := travel(v.Direction)
		v.Pos = v.Pos.Add(dir.Scale(v.Speed * scale))

		if l.hasExited(v.Pos) {
			v.State = Exited
			exited++
			continue
		}
		kept = append(kept, v)
	}
	// Drop references held past the new length.
	for i := len(kept); i < len(st.Vehicles); i++ {
		st.Vehicles[i] = nil
	}
	st.Vehicles = kept
	st.Exited += exited
	return exited
}

// update applies one state machine transition to v.
func (k kinematics) update(v *Vehicle, st *State, l layout) {
	green := v.Direction.valid() && st.Lights[v.Direction] == Green
	free := k.pathClear(v, st)
	inside := l.inIntersection(v.Pos)
	stopZone := l.inStopZone(v.Direction, v.Pos)

	switch {
	case v.State == Queued:
		// A green light releases the vehicle without looking at the box.
		if green {
			v.State = Moving
			v.TargetSpeed = k.maxSpeed
			k.accelerate(v)
			return
		}
		v.TargetSpeed = 0
		k.decelerate(v)

	case inside || !stopZone:
		// Committed or not yet at the stop zone: only obstacles matter.
		if free {
			v.TargetSpeed = k.maxSpeed
			k.accelerate(v)
			return
		}
		v.TargetSpeed = 0
		k.decelerate(v)

	default:
		// In the stop zone: obey the light.
		if green && free {
			v.TargetSpeed = k.maxSpeed
			k.accelerate(v)
			return
		}
		v.State = Queued
		v.TargetSpeed = 0
		k.decelerate(v)
	}
}
