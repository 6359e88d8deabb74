package policy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/registry"
	"github.com/vovakirdan/crossing/internal/sim"
)

func decide(t *testing.T, p sim.Policy, snap sim.Snapshot) []sim.Direction {
	t.Helper()
	dirs, err := p.Decide(context.Background(), snap)
	if err != nil {
		t.Fatalf("%s: Decide() failed: %v", p.Name(), err)
	}
	return dirs
}

func equalDirs(a, b []sim.Direction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func queued(c sim.Category, wait float64) sim.QueueEntry {
	return sim.QueueEntry{Category: c, WaitTime: wait, State: sim.Queued}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"rotate", "safe-rotate", "priority", "pressure", "schedule", "all-red"} {
		if !registry.Exists(id) {
			t.Errorf("policy %q not registered", id)
			continue
		}
		p, err := registry.Create(id, config.DefaultCrossingConfig())
		if err != nil {
			t.Errorf("Create(%q) failed: %v", id, err)
			continue
		}
		if p.Name() != id {
			t.Errorf("Name() = %q, want %q", p.Name(), id)
		}
	}
	if !registry.Exists(Default) {
		t.Errorf("default policy %q not registered", Default)
	}
}

func TestRotateOrder(t *testing.T) {
	r := &Rotate{Window: 5}
	want := []sim.Direction{sim.North, sim.West, sim.East, sim.South, sim.North}
	for i, w := range want {
		snap := sim.Snapshot{Elapsed: time.Duration(i*5)*time.Second + time.Second}
		got := decide(t, r, snap)
		if !equalDirs(got, []sim.Direction{w}) {
			t.Errorf("window %d: got %v, want [%s]", i, got, w)
		}
	}
}

func TestSafeRotate(t *testing.T) {
	r := &SafeRotate{Window: 5}

	got := decide(t, r, sim.Snapshot{Elapsed: 6 * time.Second})
	if !equalDirs(got, []sim.Direction{sim.South}) {
		t.Errorf("got %v, want [south]", got)
	}

	blocked := sim.Snapshot{
		Elapsed:  6 * time.Second,
		Vehicles: []sim.VehicleView{{Direction: sim.East, State: sim.Moving, InIntersection: true}},
	}
	if got := decide(t, r, blocked); len(got) != 0 {
		t.Errorf("got %v with a crossing vehicle, want all red", got)
	}
}

func TestPriority(t *testing.T) {
	p := &Priority{Window: 5}
	east := sim.VehicleView{Direction: sim.East, State: sim.Moving, InIntersection: true}

	tests := []struct {
		name string
		snap sim.Snapshot
		want []sim.Direction
	}{
		{
			name: "wreck",
			snap: sim.Snapshot{
				Crashed: []sim.VehicleView{{State: sim.Crashed}},
				Queues:  [sim.NumDirections][]sim.QueueEntry{sim.West: {queued(sim.Ambulance, 0)}},
			},
			want: nil,
		},
		{
			name: "ambulance beats longer queue",
			snap: sim.Snapshot{Queues: [sim.NumDirections][]sim.QueueEntry{
				sim.North: {queued(sim.Regular, 0), queued(sim.Regular, 0), queued(sim.Regular, 0)},
				sim.West:  {queued(sim.Ambulance, 0)},
			}},
			want: []sim.Direction{sim.West},
		},
		{
			name: "most police",
			snap: sim.Snapshot{Queues: [sim.NumDirections][]sim.QueueEntry{
				sim.North: {queued(sim.Regular, 0), queued(sim.Regular, 0), queued(sim.Regular, 0)},
				sim.South: {queued(sim.Police, 0)},
				sim.East:  {queued(sim.Police, 0), queued(sim.Police, 0)},
			}},
			want: []sim.Direction{sim.East},
		},
		{
			name: "longest queue",
			snap: sim.Snapshot{Queues: [sim.NumDirections][]sim.QueueEntry{
				sim.North: {queued(sim.Regular, 0)},
				sim.South: {queued(sim.Government, 0), queued(sim.Regular, 0)},
			}},
			want: []sim.Direction{sim.South},
		},
		{
			name: "unsafe choice falls through to all red",
			snap: sim.Snapshot{
				Elapsed:  time.Second,
				Vehicles: []sim.VehicleView{east},
				Queues: [sim.NumDirections][]sim.QueueEntry{
					sim.North: {queued(sim.Ambulance, 0)},
				},
			},
			want: nil,
		},
		{
			name: "occupant direction is still served",
			snap: sim.Snapshot{
				Vehicles: []sim.VehicleView{east},
				Queues: [sim.NumDirections][]sim.QueueEntry{
					sim.North: {queued(sim.Ambulance, 0)},
					sim.East:  {{Category: sim.Regular, State: sim.Moving}, queued(sim.Regular, 0)},
				},
			},
			want: []sim.Direction{sim.East},
		},
		{
			name: "empty queues use the rotation",
			snap: sim.Snapshot{Elapsed: 7 * time.Second},
			want: []sim.Direction{sim.West},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decide(t, p, tt.snap); !equalDirs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPressureServesHeavierAxis(t *testing.T) {
	p := NewPressure(config.DefaultCrossingConfig())
	snap := sim.Snapshot{
		Elapsed: time.Second,
		Queues: [sim.NumDirections][]sim.QueueEntry{
			sim.North: {queued(sim.Regular, 1)},
			sim.East:  {queued(sim.Police, 1), queued(sim.Regular, 0)},
		},
	}

	got := decide(t, p, snap)
	if !equalDirs(got, []sim.Direction{sim.East, sim.West}) {
		t.Fatalf("got %v, want [east west]", got)
	}

	// North gets heavier but the hold has not expired.
	snap.Queues[sim.North] = []sim.QueueEntry{queued(sim.Ambulance, 20)}
	snap.Elapsed += time.Second
	if got := decide(t, p, snap); !equalDirs(got, []sim.Direction{sim.East, sim.West}) {
		t.Errorf("during hold got %v, want [east west]", got)
	}

	// After the hold the axis switches.
	snap.Elapsed += p.MinHold
	if got := decide(t, p, snap); !equalDirs(got, []sim.Direction{sim.North, sim.South}) {
		t.Errorf("after hold got %v, want [north south]", got)
	}
}

func TestPressureClearsBeforeSwitching(t *testing.T) {
	p := NewPressure(config.DefaultCrossingConfig())
	snap := sim.Snapshot{
		Elapsed: time.Second,
		Queues: [sim.NumDirections][]sim.QueueEntry{
			sim.North: {queued(sim.Ambulance, 5)},
		},
		Vehicles: []sim.VehicleView{{Direction: sim.West, State: sim.Moving, InIntersection: true}},
	}

	if got := decide(t, p, snap); len(got) != 0 {
		t.Fatalf("got %v with a crossing west vehicle, want all red", got)
	}

	snap.Vehicles = nil
	snap.Elapsed += 100 * time.Millisecond
	if got := decide(t, p, snap); !equalDirs(got, []sim.Direction{sim.North, sim.South}) {
		t.Errorf("got %v once clear, want [north south]", got)
	}
}

func TestPressureMaxRepeat(t *testing.T) {
	cfg := config.DefaultCrossingConfig()
	cfg.Policy.Pressure.MaxRepeat = 2
	p := NewPressure(cfg)
	snap := sim.Snapshot{
		Elapsed: time.Second,
		Queues: [sim.NumDirections][]sim.QueueEntry{
			sim.North: {queued(sim.Ambulance, 30)},
			sim.East:  {queued(sim.Regular, 0)},
		},
	}

	var got []sim.Direction
	for i := 0; i < 3; i++ {
		got = decide(t, p, snap)
		snap.Elapsed += p.MinHold
	}
	if !equalDirs(got, []sim.Direction{sim.East, sim.West}) {
		t.Errorf("after repeats got %v, want [east west]", got)
	}
}

func TestPressureResetsOnNewRun(t *testing.T) {
	p := NewPressure(config.DefaultCrossingConfig())
	snap := sim.Snapshot{
		Elapsed: time.Minute,
		Queues:  [sim.NumDirections][]sim.QueueEntry{sim.East: {queued(sim.Regular, 0)}},
	}
	decide(t, p, snap)

	fresh := sim.Snapshot{
		Elapsed: time.Second,
		Queues:  [sim.NumDirections][]sim.QueueEntry{sim.South: {queued(sim.Regular, 0)}},
	}
	if got := decide(t, p, fresh); !equalDirs(got, []sim.Direction{sim.North, sim.South}) {
		t.Errorf("got %v, a new run must not inherit the old hold", got)
	}
}

func TestSchedule(t *testing.T) {
	plan := []config.SchedulePhase{
		{Green: []string{"north", "south"}, Seconds: 8},
		{Green: []string{}, Seconds: 2},
		{Green: []string{"east", "sideways"}, Seconds: 8},
	}
	p := NewSchedule(plan)

	tests := []struct {
		at        time.Duration
		want      []sim.Direction
		malformed bool
	}{
		{time.Second, []sim.Direction{sim.North, sim.South}, false},
		{9 * time.Second, nil, false},
		{11 * time.Second, nil, true},
		{19 * time.Second, []sim.Direction{sim.North, sim.South}, false},
	}
	for _, tt := range tests {
		got, err := p.Decide(context.Background(), sim.Snapshot{Elapsed: tt.at})
		if tt.malformed {
			if !errors.Is(err, sim.ErrMalformedResult) {
				t.Errorf("at %v: err = %v, want ErrMalformedResult", tt.at, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("at %v: err = %v", tt.at, err)
		}
		if !equalDirs(got, tt.want) {
			t.Errorf("at %v: got %v, want %v", tt.at, got, tt.want)
		}
	}

	empty := NewSchedule(nil)
	if got, err := empty.Decide(context.Background(), sim.Snapshot{}); err != nil || len(got) != 0 {
		t.Errorf("empty plan: got %v, %v", got, err)
	}
}

func TestBuiltinsRunWithoutFaults(t *testing.T) {
	for _, id := range []string{"rotate", "safe-rotate", "priority", "pressure", "schedule", "all-red"} {
		t.Run(id, func(t *testing.T) {
			cfg := config.DefaultCrossingConfig()
			p, err := registry.Create(id, cfg)
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}
			e := sim.New(cfg, p, sim.Options{Seed: 5})
			for i := 0; i < 3000 && e.Running(); i++ {
				if res := e.Step(16 * time.Millisecond); res.PolicyErr != nil {
					t.Fatalf("tick %d: %v", i, res.PolicyErr)
				}
			}
		})
	}
}
