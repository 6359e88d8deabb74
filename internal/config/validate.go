package config

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError contains details about one invalid configuration field.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the configuration and returns every problem found,
// joined into a single error. It returns nil for a usable configuration.
func (c CrossingConfig) Validate() error {
	var errs []error
	add := func(code, format string, args ...any) {
		errs = append(errs, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	f := c.Field
	if f.Width <= 0 || f.Height <= 0 {
		add("FIELD_SIZE", "field must have positive size, got %vx%v", f.Width, f.Height)
	}
	box := f.Intersection
	if box.Left >= box.Right || box.Top >= box.Bottom {
		add("INTERSECTION_SHAPE", "intersection box is empty: %+v", box)
	}
	if box.Left < 0 || box.Top < 0 || box.Right > f.Width || box.Bottom > f.Height {
		add("INTERSECTION_BOUNDS", "intersection box %+v lies outside the %vx%v field", box, f.Width, f.Height)
	}
	if f.StopDistance < 0 || f.ExitMargin < 0 || f.SpawnInset < 0 {
		add("FIELD_DISTANCE", "stop_distance, exit_margin and spawn_inset must not be negative")
	}

	v := c.Vehicle
	if v.MaxSpeed <= 0 {
		add("MAX_SPEED", "max_speed must be positive, got %v", v.MaxSpeed)
	}
	if v.Acceleration <= 0 || v.Deceleration <= 0 {
		add("ACCELERATION", "acceleration and deceleration must be positive")
	}
	if v.SafeDistance < 0 {
		add("SAFE_DISTANCE", "safe_distance must not be negative, got %v", v.SafeDistance)
	}
	if v.ReferenceFrameMS <= 0 {
		add("REFERENCE_FRAME", "reference_frame_ms must be positive, got %v", v.ReferenceFrameMS)
	}

	s := c.Spawn
	if s.IntervalMS < 0 || s.VarianceMS < 0 {
		add("SPAWN_INTERVAL", "interval_ms and variance_ms must not be negative")
	}
	if negativeEntry(s.Probabilities) || s.Probabilities.Sum() <= 0 {
		add("SPAWN_PROBABILITIES", "probabilities must be non-negative with a positive sum, got %+v", s.Probabilities)
	}

	sc := c.Scoring
	if sc.Initial <= 0 {
		add("INITIAL_SCORE", "initial score must be positive, got %v", sc.Initial)
	}
	if sc.UpdateIntervalMS <= 0 {
		add("SCORE_INTERVAL", "update_interval_ms must be positive, got %d", sc.UpdateIntervalMS)
	}
	if sc.BaseDeduction < 0 || sc.CrashedMultiplier < 0 {
		add("DEDUCTION", "base_deduction and crashed_multiplier must not be negative")
	}
	if negativeEntry(sc.WaitWeights) {
		add("WAIT_WEIGHTS", "wait weights must not be negative, got %+v", sc.WaitWeights)
	}
	if negativeEntry(sc.CrashPenalties) {
		add("CRASH_PENALTIES", "crash penalties must not be negative, got %+v", sc.CrashPenalties)
	}

	if c.Crash.DetectionRadius <= 0 {
		add("CRASH_RADIUS", "detection_radius must be positive, got %v", c.Crash.DetectionRadius)
	}

	p := c.Policy
	if p.SoftDeadlineMS < 0 {
		add("SOFT_DEADLINE", "soft_deadline_ms must not be negative, got %d", p.SoftDeadlineMS)
	}
	if p.Rotation.WindowSeconds <= 0 {
		add("ROTATION_WINDOW", "rotation window_seconds must be positive, got %v", p.Rotation.WindowSeconds)
	}
	for i, phase := range p.Schedule {
		if phase.Seconds <= 0 {
			add("SCHEDULE_PHASE", "schedule phase %d must last a positive time, got %v", i, phase.Seconds)
		}
	}

	return errors.Join(errs...)
}

func negativeEntry(t CategoryTable) bool {
	for _, v := range []float64{t.Regular, t.Ambulance, t.Police, t.Government} {
		if v < 0 || math.IsNaN(v) {
			return true
		}
	}
	return false
}
