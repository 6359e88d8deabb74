package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/crossing.yaml
var defaultCrossingYAML []byte

// DefaultCrossingConfig returns the default intersection configuration.
func DefaultCrossingConfig() CrossingConfig {
	return CrossingConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 800,
			Intersection: BoxConfig{
				Left:   300,
				Top:    300,
				Right:  500,
				Bottom: 500,
			},
			LaneOffset:   15,
			SpawnInset:   50,
			StopDistance: 80,
			ExitMargin:   100,
		},
		Vehicle: VehicleConfig{
			MaxSpeed:         1.5,
			Acceleration:     0.15,
			Deceleration:     0.2, // Braking is harder than accelerating
			SafeDistance:     60,
			ReferenceFrameMS: 16.67, // 60 FPS
		},
		Spawn: SpawnConfig{
			IntervalMS: 3000,
			VarianceMS: 2000,
			Probabilities: CategoryTable{
				Regular:    0.65,
				Ambulance:  0.10,
				Police:     0.12,
				Government: 0.13,
			},
		},
		Scoring: ScoringConfig{
			Initial:          2000,
			UpdateIntervalMS: 100,
			BaseDeduction:    0.05,
			WaitWeights: CategoryTable{
				Regular:    1,
				Ambulance:  5,
				Police:     4,
				Government: 2,
			},
			CrashPenalties: CategoryTable{
				Regular:    200,
				Ambulance:  math.Inf(1),
				Police:     950,
				Government: 400,
			},
			CrashedMultiplier: 2.0,
		},
		Crash: CrashConfig{
			DetectionRadius:  50,
			RotationRangeDeg: 45,
		},
		Policy: PolicyConfig{
			SoftDeadlineMS: 50,
			Rotation: RotationConfig{
				WindowSeconds: 5,
			},
			Pressure: PressureConfig{
				MinHoldSeconds: 4,
				MaxRepeat:      3,
			},
			Schedule: []SchedulePhase{
				{Green: []string{"north", "south"}, Seconds: 8},
				{Green: []string{}, Seconds: 3},
				{Green: []string{"east", "west"}, Seconds: 8},
				{Green: []string{}, Seconds: 3},
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `config dump`.
func DefaultYAML() []byte {
	return defaultCrossingYAML
}
