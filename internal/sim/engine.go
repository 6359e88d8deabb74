package sim

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crossing/internal/config"
)

// Options tunes an Engine.
type Options struct {
	Seed   int64
	Logger *log.Logger
}

// StepResult reports what happened during one tick.
type StepResult struct {
	Tick      uint64
	Spawned   int
	Exited    int
	Crashes   []CrashEvent
	Green     []Direction
	PolicyErr error
	Ended     bool // The run ended during this tick
	EndReason EndReason
}

// RunSummary is the outcome of a run, suitable for storage.
type RunSummary struct {
	Policy            string
	Seed              int64
	Score             float64
	Elapsed           time.Duration
	Ticks             uint64
	TotalCrashes      int
	CrashesByCategory [NumCategories]int
	EndReason         EndReason
	Spawned           int
	Exited            int
	PolicyFaults      int
	LastFault         string // Empty when the policy never faulted
}

// Engine runs one intersection. It is single-threaded: callers must not use
// it from more than one goroutine at a time.
type Engine struct {
	cfg    config.CrossingConfig
	policy Policy
	logger *log.Logger

	seed     int64
	layout   layout
	motion   kinematics
	spawner  *spawner
	collider *collider
	scorer   *scorer
	deadline time.Duration

	state *State
}

// New creates an engine and starts its first run.
func New(cfg config.CrossingConfig, p Policy, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		cfg:      cfg,
		policy:   p,
		logger:   logger,
		layout:   newLayout(cfg.Field),
		motion:   newKinematics(cfg.Vehicle),
		deadline: time.Duration(cfg.Policy.SoftDeadlineMS) * time.Millisecond,
	}
	e.Reset(opts.Seed)
	return e
}

// Reset discards the current run and starts a new one with the given seed.
func (e *Engine) Reset(seed int64) {
	e.seed = seed
	rng := rand.New(rand.NewSource(seed))
	e.spawner = newSpawner(e.cfg.Spawn, rng)
	e.collider = newCollider(e.cfg.Crash, e.cfg.Scoring, rng)
	e.scorer = newScorer(e.cfg.Scoring)
	e.state = newState(e.cfg.Scoring.Initial)
}

// SetPolicy replaces the policy. It takes effect on the next tick.
func (e *Engine) SetPolicy(p Policy) {
	e.policy = p
}

// PolicyName returns the name of the active policy.
func (e *Engine) PolicyName() string {
	if e.policy == nil {
		return "none"
	}
	return e.policy.Name()
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.CrossingConfig {
	return e.cfg
}

// Running reports whether the run is still going.
func (e *Engine) Running() bool {
	return e.state.Running
}

// Step advances the run by dt: spawn, rebuild queues, ask the policy, apply
// lights, move, detect collisions, drain score. It does nothing once the run
// has ended.
func (e *Engine) Step(dt time.Duration) StepResult {
	st := e.state
	if !st.Running {
		return StepResult{Tick: st.Tick, EndReason: st.EndReason}
	}
	if dt < 0 {
		dt = 0
	}
	st.Tick++
	st.Elapsed += dt
	now := st.Elapsed
	res := StepResult{Tick: st.Tick}

	res.Spawned = len(e.spawner.spawn(st, e.layout, now))
	st.rebuildQueues()

	d := invoke(e.policy, st.snapshot(e.layout), e.deadline)
	if d.overran {
		e.logger.Warn("policy exceeded soft deadline", "policy", e.PolicyName(), "took", d.took, "deadline", e.deadline, "tick", st.Tick)
	}
	if d.err != nil {
		st.PolicyFaults++
		st.LastFault = d.err
		res.PolicyErr = d.err
		e.logger.Warn("policy fault, all lights red", "tick", st.Tick, "err", d.err)
	}
	res.Green = setGreen(st, d.dirs)

	res.Exited = e.motion.advance(st, e.layout, dt)

	res.Crashes = e.collider.detect(st, e.layout, now)
	for _, c := range res.Crashes {
		if c.Fatal {
			e.logger.Error("fatal crash", "vehicle", c.VehicleID, "category", c.Category, "direction", c.Direction, "tick", st.Tick)
			continue
		}
		e.logger.Warn("crash", "vehicle", c.VehicleID, "category", c.Category, "direction", c.Direction, "cascade", c.Cascade, "penalty", c.Penalty)
	}

	e.scorer.drain(st, now)
	// Keep the projection consistent for readers between ticks.
	st.rebuildQueues()

	if !st.Running {
		res.Ended = true
		res.EndReason = st.EndReason
		e.logger.Info("run ended", "reason", st.EndReason, "tick", st.Tick, "elapsed", st.Elapsed, "crashes", st.TotalCrashes)
	}
	return res
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return e.state.snapshot(e.layout)
}

// IsSafe evaluates the advisory predicate on live state. It has no side
// effects and is never consulted by the engine itself.
func (e *Engine) IsSafe(dirs ...Direction) bool {
	return isSafe(len(e.state.Crashed), occupants(e.state, e.layout), dirs)
}

// Summary describes the current run.
func (e *Engine) Summary() RunSummary {
	st := e.state
	return RunSummary{
		Policy:            e.PolicyName(),
		Seed:              e.seed,
		Score:             st.Score,
		Elapsed:           st.Elapsed,
		Ticks:             st.Tick,
		TotalCrashes:      st.TotalCrashes,
		CrashesByCategory: st.CrashesByCategory,
		EndReason:         st.EndReason,
		Spawned:           st.Spawned,
		Exited:            st.Exited,
		PolicyFaults:      st.PolicyFaults,
		LastFault:         faultText(st.LastFault),
	}
}

func faultText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
