// Package sim implements the four-way intersection engine: arrivals, the
// vehicle state machine, collisions, light application and scoring. An
// external Policy decides which approaches get a green light each tick; the
// engine hands it an immutable Snapshot and never trusts its output.
package sim

// Direction is one of the four approach headings. A vehicle's direction
// names the edge it enters from: North vehicles enter at the top and travel
// down.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// NumDirections is the size of per-direction tables.
const NumDirections = 4

// Directions lists the canonical directions in fixed order.
var Directions = [NumDirections]Direction{North, South, East, West}

// String returns the lowercase token used by policies and configuration.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseDirection converts a token into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "north":
		return North, true
	case "south":
		return South, true
	case "east":
		return East, true
	case "west":
		return West, true
	default:
		return North, false
	}
}

// Vertical reports whether d travels along the north/south axis.
func (d Direction) Vertical() bool {
	return d == North || d == South
}

// Parallel reports whether two directions share a travel axis.
// A direction is parallel to itself.
func (d Direction) Parallel(o Direction) bool {
	return d.Vertical() == o.Vertical()
}

// Conflicts reports whether two directions cross each other's path.
func (d Direction) Conflicts(o Direction) bool {
	return !d.Parallel(o)
}

// valid reports whether d is one of the canonical directions.
func (d Direction) valid() bool {
	return d < NumDirections
}

// Category is a vehicle class. It selects spawn probability, wait weight
// and crash penalty.
type Category uint8

const (
	Regular Category = iota
	Ambulance
	Police
	Government
)

// NumCategories is the size of per-category tables.
const NumCategories = 4

// Categories lists every category in spawn-draw order.
var Categories = [NumCategories]Category{Regular, Ambulance, Police, Government}

func (c Category) String() string {
	switch c {
	case Regular:
		return "regular"
	case Ambulance:
		return "ambulance"
	case Police:
		return "police"
	case Government:
		return "government"
	default:
		return "unknown"
	}
}

// ParseCategory converts a token into a Category.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "regular":
		return Regular, true
	case "ambulance":
		return Ambulance, true
	case "police":
		return Police, true
	case "government":
		return Government, true
	default:
		return Regular, false
	}
}

// index returns the table slot for c; unknown categories use Regular's slot.
func (c Category) index() int {
	if c >= NumCategories {
		return int(Regular)
	}
	return int(c)
}

// VehicleState is the lifecycle state of a vehicle.
type VehicleState uint8

const (
	Queued VehicleState = iota
	Moving
	Crashed
	Exited
)

func (s VehicleState) String() string {
	switch s {
	case Queued:
		return "queued"
	case Moving:
		return "moving"
	case Crashed:
		return "crashed"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

// LightState is the signal shown to one approach.
type LightState uint8

const (
	Red LightState = iota
	Green
)

func (l LightState) String() string {
	if l == Green {
		return "green"
	}
	return "red"
}

// EndReason records why a run stopped.
type EndReason uint8

const (
	EndNone          EndReason = iota // Still running
	EndScoreDepleted                  // Score reached zero
	EndFatalCrash                     // A category with an unbounded penalty crashed
)

func (r EndReason) String() string {
	switch r {
	case EndScoreDepleted:
		return "score_depleted"
	case EndFatalCrash:
		return "fatal_crash"
	default:
		return "running"
	}
}
