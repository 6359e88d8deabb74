// Package config provides YAML-based configuration loading, traffic presets
// and validation for the intersection simulation.
package config

// CrossingConfig contains all configuration for one intersection run.
type CrossingConfig struct {
	Field   FieldConfig   `yaml:"field"`
	Vehicle VehicleConfig `yaml:"vehicle"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Scoring ScoringConfig `yaml:"scoring"`
	Crash   CrashConfig   `yaml:"crash"`
	Policy  PolicyConfig  `yaml:"policy"`
}

// FieldConfig defines the playing field and intersection geometry in pixels.
type FieldConfig struct {
	Width        float64   `yaml:"width"`
	Height       float64   `yaml:"height"`
	Intersection BoxConfig `yaml:"intersection"`
	LaneOffset   float64   `yaml:"lane_offset"`   // Distance from road center line to lane center
	SpawnInset   float64   `yaml:"spawn_inset"`   // Distance from entry edge to spawn point
	StopDistance float64   `yaml:"stop_distance"` // Depth of the stop zone before the intersection
	ExitMargin   float64   `yaml:"exit_margin"`   // Distance beyond the field at which vehicles exit
}

// BoxConfig is an axis-aligned box.
type BoxConfig struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// VehicleConfig defines vehicle kinematics.
type VehicleConfig struct {
	MaxSpeed         float64 `yaml:"max_speed"`          // Pixels per reference frame
	Acceleration     float64 `yaml:"acceleration"`       // Speed gained per tick
	Deceleration     float64 `yaml:"deceleration"`       // Speed lost per tick
	SafeDistance     float64 `yaml:"safe_distance"`      // Minimum following distance along the travel axis
	ReferenceFrameMS float64 `yaml:"reference_frame_ms"` // Frame interval speeds are expressed in
}

// SpawnConfig defines arrival scheduling.
type SpawnConfig struct {
	IntervalMS    int           `yaml:"interval_ms"` // Base time between arrivals per direction
	VarianceMS    int           `yaml:"variance_ms"` // Uniform jitter added to the base, re-sampled each check
	Probabilities CategoryTable `yaml:"probabilities"`
}

// ScoringConfig defines the wait drain and crash penalties.
type ScoringConfig struct {
	Initial           float64       `yaml:"initial"`
	UpdateIntervalMS  int           `yaml:"update_interval_ms"`
	BaseDeduction     float64       `yaml:"base_deduction"`
	WaitWeights       CategoryTable `yaml:"wait_weights"`
	CrashPenalties    CategoryTable `yaml:"crash_penalties"` // .inf marks the fatal category
	CrashedMultiplier float64       `yaml:"crashed_multiplier"`
}

// CrashConfig defines collision detection.
type CrashConfig struct {
	DetectionRadius  float64 `yaml:"detection_radius"`
	RotationRangeDeg float64 `yaml:"rotation_range_deg"` // Visual disorder applied to wrecks
}

// PolicyConfig configures the control policy boundary and built-in policies.
type PolicyConfig struct {
	SoftDeadlineMS int             `yaml:"soft_deadline_ms"`
	Rotation       RotationConfig  `yaml:"rotation"`
	Pressure       PressureConfig  `yaml:"pressure"`
	Schedule       []SchedulePhase `yaml:"schedule"`
}

// RotationConfig configures the rotating built-in policies.
type RotationConfig struct {
	WindowSeconds float64 `yaml:"window_seconds"`
}

// PressureConfig configures the max-pressure built-in policy.
type PressureConfig struct {
	MinHoldSeconds float64 `yaml:"min_hold_seconds"` // Minimum time a phase stays green
	MaxRepeat      int     `yaml:"max_repeat"`       // Max consecutive re-selections of one phase
}

// SchedulePhase is one step of a fixed-time plan.
type SchedulePhase struct {
	Green   []string `yaml:"green"`
	Seconds float64  `yaml:"seconds"`
}

// CategoryTable holds one value per vehicle category.
// Using fields rather than a map keeps every lookup total.
type CategoryTable struct {
	Regular    float64 `yaml:"regular"`
	Ambulance  float64 `yaml:"ambulance"`
	Police     float64 `yaml:"police"`
	Government float64 `yaml:"government"`
}

// Sum returns the total over all categories.
func (t CategoryTable) Sum() float64 {
	return t.Regular + t.Ambulance + t.Police + t.Government
}
