package config

import "fmt"

// TrafficPreset represents a named traffic density.
type TrafficPreset string

const (
	TrafficLight     TrafficPreset = "light"
	TrafficNormal    TrafficPreset = "normal"
	TrafficRush      TrafficPreset = "rush"
	TrafficEmergency TrafficPreset = "emergency"
)

// Presets lists the known presets in display order.
func Presets() []TrafficPreset {
	return []TrafficPreset{TrafficLight, TrafficNormal, TrafficRush, TrafficEmergency}
}

// ParsePreset converts a flag value into a preset.
// The empty string selects TrafficNormal.
func ParsePreset(s string) (TrafficPreset, error) {
	if s == "" {
		return TrafficNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return TrafficNormal, fmt.Errorf("config: unknown traffic preset %q", s)
}

// ApplyPreset modifies the config based on a traffic preset.
// TrafficNormal leaves the configuration untouched.
func ApplyPreset(cfg *CrossingConfig, preset TrafficPreset) {
	switch preset {
	case TrafficLight:
		cfg.Spawn.IntervalMS = 5000
		cfg.Spawn.VarianceMS = 3000
	case TrafficRush:
		cfg.Spawn.IntervalMS = 1500
		cfg.Spawn.VarianceMS = 1000
	case TrafficEmergency:
		cfg.Spawn.IntervalMS = 2500
		cfg.Spawn.VarianceMS = 1500
		cfg.Spawn.Probabilities = CategoryTable{
			Regular:    0.40,
			Ambulance:  0.25,
			Police:     0.20,
			Government: 0.15,
		}
	}
}
