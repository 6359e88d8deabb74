package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/crossing/internal/storage"
)

func TestScoreboardFiltersByPolicy(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.RunRecord{
		{Policy: "all-red", ElapsedMS: 5000, EndReason: "score_depleted"},
		{Policy: "rotate", ElapsedMS: 90000, EndReason: "score_depleted"},
		{Policy: "rotate", ElapsedMS: 30000, EndReason: "fatal_crash"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 40)
	if m.selected().ID != "" || len(m.runs) != 3 {
		t.Fatalf("expected all runs first, got %q with %d runs", m.selected().ID, len(m.runs))
	}
	if m.stats != nil {
		t.Error("stats should be empty for all policies")
	}

	for m.selected().ID != "rotate" {
		m.move(1)
	}
	if len(m.runs) != 2 || m.runs[0].Elapsed().Seconds() != 90 {
		t.Fatalf("unexpected rotate runs: %+v", m.runs)
	}
	if m.stats == nil || m.stats.Runs != 2 || m.stats.FatalRuns != 1 {
		t.Errorf("unexpected stats: %+v", m.stats)
	}
	if !strings.Contains(m.View(), "01:30") {
		t.Error("view should list the 90s run")
	}

	m.move(-1 - len(m.policies))
	if m.cursor < 0 || m.cursor >= len(m.policies) {
		t.Errorf("cursor %d out of range", m.cursor)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if len(m.runs) != 0 {
		t.Fatal("expected no runs without a store")
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("empty message missing")
	}
}
