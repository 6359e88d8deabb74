package sim

import (
	"time"

	"github.com/vovakirdan/crossing/internal/core"
)

// QueueEntry is the policy-facing projection of one active vehicle.
type QueueEntry struct {
	ID       int
	Category Category
	WaitTime float64
	State    VehicleState
}

// Pedestrian is the read contract for pedestrians. The engine does not
// simulate pedestrians; snapshots always carry an empty collection.
type Pedestrian struct {
	Direction Direction
	State     string
}

// State is the single mutable run state. Only engine components hold it;
// everything outside the engine sees a Snapshot.
type State struct {
	Score     float64
	Running   bool
	EndReason EndReason
	Elapsed   time.Duration
	Tick      uint64

	Lights [NumDirections]LightState

	// Vehicles is the active collection, crashed vehicles included.
	Vehicles []*Vehicle
	// Crashed is append-only for the whole run.
	Crashed []*Vehicle

	CrashesByCategory [NumCategories]int
	TotalCrashes      int

	// Queues is rebuilt every tick from Vehicles.
	Queues [NumDirections][]QueueEntry

	Spawned      int
	Exited       int
	PolicyFaults int
	LastFault    error

	nextID int
}

// newState creates the state at the start of a run. All lights start red.
func newState(initialScore float64) *State {
	return &State{
		Score:   initialScore,
		Running: true,
	}
}

// HasActiveCrashes reports whether any wreck blocks the intersection.
func (s *State) HasActiveCrashes() bool {
	return len(s.Crashed) > 0
}

// rebuildQueues refreshes the per-direction projection of queued and
// moving vehicles.
func (s *State) rebuildQueues() {
	for i := range s.Queues {
		s.Queues[i] = s.Queues[i][:0]
	}
	for _, v := range s.Vehicles {
		if v.State != Queued && v.State != Moving {
			continue
		}
		if !v.Direction.valid() {
			continue
		}
		s.Queues[v.Direction] = append(s.Queues[v.Direction], QueueEntry{
			ID:       v.ID,
			Category: v.Category,
			WaitTime: v.WaitTime,
			State:    v.State,
		})
	}
}

// end clears the running flag. It is the only place that does so.
func (s *State) end(reason EndReason) {
	if !s.Running {
		return
	}
	s.Running = false
	s.EndReason = reason
}

// VehicleView is an immutable copy of a vehicle for readers.
type VehicleView struct {
	ID             int
	Category       Category
	Direction      Direction
	State          VehicleState
	Pos            core.Vec
	Speed          float64
	Heading        float64
	WaitTime       float64
	InIntersection bool
	CrashTime      time.Duration
}

// Snapshot is a deep copy of the run state handed to policies and renderers.
// Mutating a snapshot never affects the engine.
type Snapshot struct {
	Tick      uint64
	Score     float64
	Running   bool
	EndReason EndReason
	Elapsed   time.Duration

	Lights [NumDirections]LightState
	Queues [NumDirections][]QueueEntry

	Vehicles []VehicleView
	Crashed  []VehicleView

	CrashesByCategory [NumCategories]int
	TotalCrashes      int
	PolicyFaults      int

	// LastFault is the most recent policy fault of the run, nil if none.
	LastFault error

	// Pedestrians is always empty; see Pedestrian.
	Pedestrians []Pedestrian
}

// snapshot builds a deep copy of s.
func (s *State) snapshot(l layout) Snapshot {
	snap := Snapshot{
		Tick:              s.Tick,
		Score:             s.Score,
		Running:           s.Running,
		EndReason:         s.EndReason,
		Elapsed:           s.Elapsed,
		Lights:            s.Lights,
		Vehicles:          make([]VehicleView, 0, len(s.Vehicles)),
		Crashed:           make([]VehicleView, 0, len(s.Crashed)),
		CrashesByCategory: s.CrashesByCategory,
		TotalCrashes:      s.TotalCrashes,
		PolicyFaults:      s.PolicyFaults,
		LastFault:         s.LastFault,
		Pedestrians:       []Pedestrian{},
	}
	for d := range s.Queues {
		snap.Queues[d] = append([]QueueEntry(nil), s.Queues[d]...)
	}
	for _, v := range s.Vehicles {
		snap.Vehicles = append(snap.Vehicles, viewOf(v, l))
	}
	for _, v := range s.Crashed {
		snap.Crashed = append(snap.Crashed, viewOf(v, l))
	}
	return snap
}

func viewOf(v *Vehicle, l layout) VehicleView {
	return VehicleView{
		ID:             v.ID,
		Category:       v.Category,
		Direction:      v.Direction,
		State:          v.State,
		Pos:            v.Pos,
		Speed:          v.Speed,
		Heading:        v.Heading + v.CrashRotation,
		WaitTime:       v.WaitTime,
		InIntersection: l.inIntersection(v.Pos),
		CrashTime:      v.CrashTime,
	}
}

// Queue returns the projection for one direction.
func (s Snapshot) Queue(d Direction) []QueueEntry {
	if !d.valid() {
		return nil
	}
	return s.Queues[d]
}

// Light returns the light shown to one direction.
func (s Snapshot) Light(d Direction) LightState {
	if !d.valid() {
		return Red
	}
	return s.Lights[d]
}

// HasActiveCrashes reports whether any wreck blocks the intersection.
func (s Snapshot) HasActiveCrashes() bool {
	return len(s.Crashed) > 0
}

// IsSafe evaluates the advisory safety predicate against this snapshot.
func (s Snapshot) IsSafe(dirs ...Direction) bool {
	occupants := make([]Direction, 0, len(s.Vehicles))
	for _, v := range s.Vehicles {
		if v.State == Moving && v.InIntersection {
			occupants = append(occupants, v.Direction)
		}
	}
	return isSafe(len(s.Crashed), occupants, dirs)
}
