package sim

import (
	"context"
	"time"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/core"
)

// frame is one reference frame, so one tick moves a vehicle by its speed.
const frame = 16670 * time.Microsecond

func greenFor(dirs ...Direction) Policy {
	return PolicyFunc(func(context.Context, Snapshot) ([]Direction, error) {
		return dirs, nil
	})
}

func allRed() Policy {
	return greenFor()
}

// newQuiet returns an engine that never spawns on its own.
func newQuiet(p Policy) *Engine {
	e := New(config.DefaultCrossingConfig(), p, Options{Seed: 1})
	e.spawner.interval = time.Hour
	e.spawner.variance = 0
	for d := range e.spawner.lastSpawn {
		e.spawner.lastSpawn[d] = 0
	}
	return e
}

// place inserts a vehicle directly into the engine state.
func place(e *Engine, d Direction, c Category, s VehicleState, x, y float64) *Vehicle {
	st := e.state
	st.nextID++
	v := &Vehicle{
		ID:        st.nextID,
		Category:  c,
		Direction: d,
		State:     s,
		Pos:       core.Vec{X: x, Y: y},
	}
	if s == Moving {
		v.TargetSpeed = e.motion.maxSpeed
	}
	if s == Crashed {
		v.Crashed = true
		st.Crashed = append(st.Crashed, v)
	}
	st.Vehicles = append(st.Vehicles, v)
	return v
}

func countActive(snap Snapshot) int {
	n := 0
	for _, v := range snap.Vehicles {
		if v.State == Queued || v.State == Moving {
			n++
		}
	}
	return n
}

func queueTotal(snap Snapshot) int {
	n := 0
	for _, q := range snap.Queues {
		n += len(q)
	}
	return n
}
