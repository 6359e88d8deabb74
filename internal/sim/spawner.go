package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/crossing/internal/config"
)

// spawner schedules arrivals independently for each direction.
type spawner struct {
	interval  time.Duration
	variance  time.Duration
	weights   [NumCategories]float64
	lastSpawn [NumDirections]time.Duration
	rng       *rand.Rand
}

func newSpawner(cfg config.SpawnConfig, rng *rand.Rand) *spawner {
	s := &spawner{
		interval: time.Duration(cfg.IntervalMS) * time.Millisecond,
		variance: time.Duration(cfg.VarianceMS) * time.Millisecond,
		weights:  categoryTable(cfg.Probabilities),
		rng:      rng,
	}
	// The first arrival in each direction comes within one variance window.
	for d := range s.lastSpawn {
		s.lastSpawn[d] = -s.interval
	}
	return s
}

// threshold draws the wait before the next arrival. The jitter is re-sampled
// on every check.
func (s *spawner) threshold() time.Duration {
	if s.variance <= 0 {
		return s.interval
	}
	return s.interval + time.Duration(s.rng.Float64()*float64(s.variance))
}

// due reports whether direction d spawns at time now.
func (s *spawner) due(d Direction, now time.Duration) bool {
	return now-s.lastSpawn[d] > s.threshold()
}

// category draws a category from the cumulative weights. The weights are
// normalized by their sum; a degenerate table always yields Regular.
func (s *spawner) category() Category {
	var total float64
	for _, w := range s.weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return Regular
	}
	r := s.rng.Float64() * total
	var acc float64
	for i, w := range s.weights {
		if w <= 0 {
			continue
		}
		acc += w
		if r < acc {
			return Categories[i]
		}
	}
	return Regular
}

// spawn checks every direction in canonical order and inserts new vehicles
// into st. It returns the vehicles created this tick.
func (s *spawner) spawn(st *State, l layout, now time.Duration) []*Vehicle {
	var created []*Vehicle
	for _, d := range Directions {
		if !s.due(d, now) {
			continue
		}
		pos, heading := l.entry(d)
		st.nextID++
		v := &Vehicle{
			ID:        st.nextID,
			Category:  s.category(),
			Direction: d,
			State:     Queued,
			Pos:       pos,
			Heading:   heading,
			SpawnTime: now,
		}
		st.Vehicles = append(st.Vehicles, v)
		st.Spawned++
		s.lastSpawn[d] = now
		created = append(created, v)
	}
	return created
}

// categoryTable converts a config table into an indexable array.
func categoryTable(t config.CategoryTable) [NumCategories]float64 {
	return [NumCategories]float64{
		Regular:    t.Regular,
		Ambulance:  t.Ambulance,
		Police:     t.Police,
		Government: t.Government,
	}
}
