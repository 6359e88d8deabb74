package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/crossing/internal/config"
)

// scorer applies the continuous wait drain at a fixed cadence.
type scorer struct {
	interval   time.Duration
	base       float64
	weights    [NumCategories]float64
	multiplier float64
	lastUpdate time.Duration
}

func newScorer(cfg config.ScoringConfig) *scorer {
	return &scorer{
		interval:   time.Duration(cfg.UpdateIntervalMS) * time.Millisecond,
		base:       cfg.BaseDeduction,
		weights:    categoryTable(cfg.WaitWeights),
		multiplier: cfg.CrashedMultiplier,
	}
}

// drain deducts the wait penalty if the throttle allows it at time now.
// It returns the amount deducted.
func (s *scorer) drain(st *State, now time.Duration) float64 {
	if !st.Running {
		return 0
	}
	if now-s.lastUpdate < s.interval {
		return 0
	}
	s.lastUpdate = now

	var total float64
	for _, v := range st.Vehicles {
		switch v.State {
		case Queued:
			total += s.weights[v.Category.index()] * s.base
		case Crashed:
			total += s.weights[v.Category.index()] * s.base * s.multiplier
		}
	}
	if total <= 0 {
		return 0
	}
	st.Score = math.Max(0, st.Score-total)
	if st.Score <= 0 {
		st.Score = 0
		st.end(EndScoreDepleted)
	}
	return total
}

// applyPenalty deducts a one-time crash penalty. An infinite penalty empties
// the score and ends the run; it reports whether that happened.
func applyPenalty(st *State, penalty float64) bool {
	if math.IsInf(penalty, 1) {
		st.Score = 0
		st.end(EndFatalCrash)
		return true
	}
	if penalty <= 0 || math.IsNaN(penalty) {
		return false
	}
	st.Score = math.Max(0, st.Score-penalty)
	if st.Score <= 0 {
		st.Score = 0
		st.end(EndScoreDepleted)
	}
	return false
}
