package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultCrossingConfig()) {
		t.Errorf("embedded YAML and DefaultCrossingConfig() differ:\n%+v\n%+v", cfg, DefaultCrossingConfig())
	}
}

func TestFatalPenaltyIsInfinite(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !math.IsInf(cfg.Scoring.CrashPenalties.Ambulance, 1) {
		t.Errorf("ambulance penalty = %v, expected +Inf", cfg.Scoring.CrashPenalties.Ambulance)
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte(`
vehicle:
  max_speed: 3
spawn:
  probabilities:
    regular: 1
    ambulance: 0
    police: 0
    government: 0
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Vehicle.MaxSpeed != 3 {
		t.Errorf("MaxSpeed = %v, expected 3", cfg.Vehicle.MaxSpeed)
	}
	// Untouched keys keep their defaults
	if cfg.Vehicle.Acceleration != 0.15 {
		t.Errorf("Acceleration = %v, expected default 0.15", cfg.Vehicle.Acceleration)
	}
	if cfg.Spawn.Probabilities.Ambulance != 0 {
		t.Errorf("Ambulance probability = %v, expected 0", cfg.Spawn.Probabilities.Ambulance)
	}
}

func TestLoadCrossingCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("scoring:\n  initial: 500\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCrossing(path)
	if err != nil {
		t.Fatalf("LoadCrossing failed: %v", err)
	}
	if cfg.Scoring.Initial != 500 {
		t.Errorf("Initial = %v, expected 500", cfg.Scoring.Initial)
	}
}

func TestLoadCrossingErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadCrossing(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("field: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadCrossing(bad)
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
	// Defaults are returned alongside the error
	if cfg.Field.Width != 800 {
		t.Errorf("expected default config on error, got width %v", cfg.Field.Width)
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := DefaultCrossingConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultCrossingConfig()
	cfg.Vehicle.MaxSpeed = 0
	cfg.Crash.DetectionRadius = -1
	cfg.Spawn.Probabilities = CategoryTable{}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	codes := map[string]bool{}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Fatalf("expected joined error, got %T", err)
	}
	for _, e := range joined.Unwrap() {
		var ve ValidationError
		if errors.As(e, &ve) {
			codes[ve.Code] = true
		}
	}
	for _, code := range []string{"MAX_SPEED", "CRASH_RADIUS", "SPAWN_PROBABILITIES"} {
		if !codes[code] {
			t.Errorf("expected %s in validation errors, got %v", code, codes)
		}
	}
}

func TestValidateIntersectionOutsideField(t *testing.T) {
	cfg := DefaultCrossingConfig()
	cfg.Field.Intersection.Right = 900

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for intersection outside the field")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    TrafficPreset
		wantErr bool
	}{
		{"", TrafficNormal, false},
		{"light", TrafficLight, false},
		{"rush", TrafficRush, false},
		{"emergency", TrafficEmergency, false},
		{"gridlock", TrafficNormal, true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	normal := DefaultCrossingConfig()
	ApplyPreset(&normal, TrafficNormal)
	if !reflect.DeepEqual(normal, DefaultCrossingConfig()) {
		t.Error("normal preset should not change the config")
	}

	rush := DefaultCrossingConfig()
	ApplyPreset(&rush, TrafficRush)
	if rush.Spawn.IntervalMS >= normal.Spawn.IntervalMS {
		t.Errorf("rush interval %d should be shorter than normal %d", rush.Spawn.IntervalMS, normal.Spawn.IntervalMS)
	}

	em := DefaultCrossingConfig()
	ApplyPreset(&em, TrafficEmergency)
	if em.Spawn.Probabilities.Ambulance <= normal.Spawn.Probabilities.Ambulance {
		t.Error("emergency preset should raise ambulance probability")
	}
	if err := em.Validate(); err != nil {
		t.Errorf("emergency preset produced invalid config: %v", err)
	}
}
