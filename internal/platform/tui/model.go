package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/core"
	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/sim"
	"github.com/vovakirdan/crossing/internal/storage"
)

// RunOptions configures a viewed run.
type RunOptions struct {
	PolicyID string
	Preset   config.TrafficPreset
	Config   config.CrossingConfig // Preset already applied
	Store    *storage.Store        // Optional; finished runs are saved when set
	Runtime  core.RuntimeConfig
	Logger   *log.Logger
}

// Model is the Bubble Tea model that drives the engine from wall-clock ticks
// and draws its snapshots.
type Model struct {
	opts       RunOptions
	engine     *sim.Engine
	screen     *core.Screen
	logger     *log.Logger
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	lastTick   time.Time
	paused     bool
	quitting   bool
	backToMenu bool
	exitOnBack bool
	runSaved   bool // Whether the current run has been recorded
}

// NewModel creates the policy and the engine for a viewed run.
func NewModel(opts RunOptions) (Model, error) {
	opts.Runtime = opts.Runtime.Normalized()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	p, err := registry.Create(opts.PolicyID, opts.Config)
	if err != nil {
		return Model{}, err
	}

	return Model{
		opts:       opts,
		engine:     sim.New(opts.Config, p, sim.Options{Seed: opts.Runtime.Seed, Logger: logger}),
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Quit, back and screenshot act at once;
// everything else is applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionScreenshot:
		m.saveScreenshot()
	case core.ActionBack:
		// Leaving mid-run requires pausing first.
		if m.paused || !m.engine.Running() {
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick advances the engine by the measured frame time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.opts.Runtime.TickRate)
	m.lastTick = now

	running := m.engine.Running()
	switch {
	case m.inputFrame.Has(core.ActionRestart) && !running:
		m.restart()
	case m.inputFrame.Has(core.ActionPause) && running:
		m.paused = !m.paused
	}

	if !m.paused {
		m.engine.Step(dt)
	}

	if !m.engine.Running() && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// restart begins a new run with a fresh seed and a fresh policy instance, so
// stateful policies do not carry memory across runs.
func (m *Model) restart() {
	if p, err := registry.Create(m.opts.PolicyID, m.opts.Config); err == nil {
		m.engine.SetPolicy(p)
	} else {
		m.logger.Warn("cannot recreate policy, keeping current instance", "policy", m.opts.PolicyID, "err", err)
	}
	m.opts.Runtime.Seed = time.Now().UnixNano()
	m.engine.Reset(m.opts.Runtime.Seed)
	m.paused = false
	m.runSaved = false
}

// saveRun records the finished run. Failures are logged and the viewer
// continues.
func (m *Model) saveRun() {
	if m.opts.Store == nil {
		return
	}
	rec := storage.RecordFromSummary(m.engine.Summary(), string(m.opts.Preset))
	if _, err := m.opts.Store.SaveRun(rec); err != nil {
		m.logger.Warn("cannot save run", "err", err)
	}
}

func (m *Model) draw() {
	DrawSnapshot(m.screen, m.engine.Snapshot(), m.opts.Config.Field, HUD{
		Policy: m.engine.PolicyName(),
		Preset: string(m.opts.Preset),
		Paused: m.paused,
	})
}

// saveScreenshot saves the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".crossing", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.opts.PolicyID, timestamp))

	//nolint:errcheck // Best-effort save, the run continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Paused reports whether the simulation is paused.
func (m Model) Paused() bool {
	return m.paused
}

// Snapshot returns the current engine state.
func (m Model) Snapshot() sim.Snapshot {
	return m.engine.Snapshot()
}

// Run starts a Bubble Tea program for one policy. It reports whether the
// user asked to go back to the menu rather than quit.
func Run(opts RunOptions) (bool, error) {
	model, err := NewModel(opts)
	if err != nil {
		return false, err
	}
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
