package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/crossing/internal/sim"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(policy string, elapsed time.Duration, score float64) RunRecord {
	return RunRecord{
		Policy:    policy,
		Seed:      1,
		Score:     score,
		ElapsedMS: elapsed.Milliseconds(),
		Ticks:     elapsed.Milliseconds() / 16,
		EndReason: sim.EndScoreDepleted.String(),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndTopRuns(t *testing.T) {
	store := openTemp(t)

	for _, r := range []RunRecord{
		run("rotate", 40*time.Second, 0),
		run("rotate", 90*time.Second, 0),
		run("rotate", 90*time.Second, 120),
		run("priority", 300*time.Second, 0),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("rotate", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Elapsed() != 90*time.Second || runs[0].Score != 120 {
		t.Errorf("Expected the 90s run with score 120 first, got %+v", runs[0])
	}
	if runs[2].Elapsed() != 40*time.Second {
		t.Errorf("Expected the 40s run last, got %v", runs[2].Elapsed())
	}
	if runs[0].Preset != "normal" {
		t.Errorf("Expected default preset normal, got %q", runs[0].Preset)
	}

	all, err := store.TopRuns("", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 2 || all[0].Policy != "priority" {
		t.Errorf("Expected priority first across policies, got %+v", all)
	}
}

func TestRecordFromSummary(t *testing.T) {
	store := openTemp(t)

	sum := sim.RunSummary{
		Policy:            "pressure",
		Seed:              77,
		Score:             0,
		Elapsed:           75 * time.Second,
		Ticks:             4500,
		TotalCrashes:      3,
		CrashesByCategory: [sim.NumCategories]int{2, 1, 0, 0},
		EndReason:         sim.EndFatalCrash,
		Spawned:           40,
		Exited:            30,
	}
	if _, err := store.SaveRun(RecordFromSummary(sum, "rush")); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.Seed != 77 || r.Preset != "rush" || r.Ticks != 4500 || r.EndReason != "fatal_crash" {
		t.Errorf("Unexpected record: %+v", r)
	}
	if r.CrashesByCategory != sum.CrashesByCategory || r.TotalCrashes != 3 {
		t.Errorf("Crash counters = %v/%d", r.CrashesByCategory, r.TotalCrashes)
	}
	if r.Spawned != 40 || r.Exited != 30 {
		t.Errorf("Spawned/Exited = %d/%d", r.Spawned, r.Exited)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestBestElapsed(t *testing.T) {
	store := openTemp(t)

	best, err := store.BestElapsed("rotate")
	if err != nil {
		t.Fatalf("BestElapsed() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty history, got %v", best)
	}

	store.SaveRun(run("rotate", 10*time.Second, 0)) //nolint:errcheck
	store.SaveRun(run("rotate", 25*time.Second, 0)) //nolint:errcheck

	best, err = store.BestElapsed("rotate")
	if err != nil {
		t.Fatalf("BestElapsed() failed: %v", err)
	}
	if best != 25*time.Second {
		t.Errorf("Expected 25s, got %v", best)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTemp(t)

	store.SaveRun(run("rotate", time.Second, 0))   //nolint:errcheck
	store.SaveRun(run("priority", time.Second, 0)) //nolint:errcheck

	if err := store.ClearRuns("rotate"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("rotate", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 rotate runs after clear, got %d", len(runs))
	}
	runs, _ = store.TopRuns("priority", 10)
	if len(runs) != 1 {
		t.Errorf("Expected priority runs to survive, got %d", len(runs))
	}
}

func TestPolicyStats(t *testing.T) {
	store := openTemp(t)

	fatal := run("priority", 30*time.Second, 0)
	fatal.EndReason = sim.EndFatalCrash.String()
	fatal.TotalCrashes = 2
	store.SaveRun(fatal)                               //nolint:errcheck
	store.SaveRun(run("priority", 90*time.Second, 0)) //nolint:errcheck

	stats, err := store.GetPolicyStats("priority")
	if err != nil {
		t.Fatalf("GetPolicyStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.FatalRuns != 1 || stats.TotalCrash != 2 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.BestElapsed != 90*time.Second || stats.AvgElapsed != 60*time.Second {
		t.Errorf("Elapsed stats = %v best, %v avg", stats.BestElapsed, stats.AvgElapsed)
	}
	if stats.LastRun.IsZero() {
		t.Error("LastRun was not populated")
	}

	empty, err := store.GetPolicyStats("nobody")
	if err != nil {
		t.Fatalf("GetPolicyStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastRun.IsZero() {
		t.Errorf("Unexpected stats for unknown policy: %+v", empty)
	}
}
