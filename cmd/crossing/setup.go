package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crossing/internal/config"
)

// loadBaseConfig loads and validates the configuration without applying
// the traffic preset. Used where each session picks its own preset.
func loadBaseConfig() (config.CrossingConfig, config.TrafficPreset, error) {
	preset, err := config.ParsePreset(flagTraffic)
	if err != nil {
		return config.CrossingConfig{}, preset, err
	}
	cfg, err := config.LoadCrossing(flagConfig)
	if err != nil {
		return cfg, preset, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, preset, err
	}
	return cfg, preset, nil
}

// loadConfig loads the configuration with the --traffic preset applied.
func loadConfig() (config.CrossingConfig, config.TrafficPreset, error) {
	cfg, preset, err := loadBaseConfig()
	if err != nil {
		return cfg, preset, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// newLogger builds a logger writing to w at the --log-level threshold.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	}), nil
}

// viewerLogger returns a logger for full-screen commands. Writing to the
// terminal would corrupt the display, so logs go to --log-file or nowhere.
// The returned close function is always safe to call.
func viewerLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "crossing")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
