// Package storage provides SQLite-based history of finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only run summaries are stored; simulation state is never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/crossing/internal/sim"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord represents one finished run.
type RunRecord struct {
	ID                int64
	Policy            string
	Seed              int64
	Preset            string
	Score             float64
	ElapsedMS         int64
	Ticks             int64
	TotalCrashes      int
	CrashesByCategory [sim.NumCategories]int
	Spawned           int
	Exited            int
	PolicyFaults      int
	EndReason         string
	CreatedAt         time.Time
}

// Elapsed returns the simulated run length.
func (r RunRecord) Elapsed() time.Duration {
	return time.Duration(r.ElapsedMS) * time.Millisecond
}

// RecordFromSummary converts an engine summary into a record.
func RecordFromSummary(s sim.RunSummary, preset string) RunRecord {
	return RunRecord{
		Policy:            s.Policy,
		Seed:              s.Seed,
		Preset:            preset,
		Score:             s.Score,
		ElapsedMS:         s.Elapsed.Milliseconds(),
		Ticks:             int64(s.Ticks),
		TotalCrashes:      s.TotalCrashes,
		CrashesByCategory: s.CrashesByCategory,
		Spawned:           s.Spawned,
		Exited:            s.Exited,
		PolicyFaults:      s.PolicyFaults,
		EndReason:         s.EndReason.String(),
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			policy TEXT NOT NULL,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT 'normal',
			score REAL NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			crashes INTEGER NOT NULL DEFAULT 0,
			crashes_regular INTEGER NOT NULL DEFAULT 0,
			crashes_ambulance INTEGER NOT NULL DEFAULT 0,
			crashes_police INTEGER NOT NULL DEFAULT 0,
			crashes_government INTEGER NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			exited INTEGER NOT NULL DEFAULT 0,
			policy_faults INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_policy ON runs(policy);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(policy, elapsed_ms DESC, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if r.Preset == "" {
		r.Preset = "normal"
	}
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (policy, seed, preset, score, elapsed_ms, ticks, crashes,
		  crashes_regular, crashes_ambulance, crashes_police, crashes_government,
		  spawned, exited, policy_faults, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Policy, r.Seed, r.Preset, r.Score, r.ElapsedMS, r.Ticks, r.TotalCrashes,
		r.CrashesByCategory[sim.Regular], r.CrashesByCategory[sim.Ambulance],
		r.CrashesByCategory[sim.Police], r.CrashesByCategory[sim.Government],
		r.Spawned, r.Exited, r.PolicyFaults, r.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, policy, seed, preset, score, elapsed_ms, ticks, crashes,
	crashes_regular, crashes_ambulance, crashes_police, crashes_government,
	spawned, exited, policy_faults, end_reason, created_at`

// TopRuns retrieves the best N runs for the given policy. An empty policy
// selects every policy. Runs that lasted longer rank first; score breaks
// ties, since every run eventually ends at zero.
func (s *Store) TopRuns(policy string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR policy = ?
		 ORDER BY elapsed_ms DESC, score DESC, id ASC
		 LIMIT ?`,
		policy, policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RecentRuns retrieves the most recently saved runs across all policies.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Policy, &r.Seed, &r.Preset, &r.Score, &r.ElapsedMS, &r.Ticks, &r.TotalCrashes,
			&r.CrashesByCategory[sim.Regular], &r.CrashesByCategory[sim.Ambulance],
			&r.CrashesByCategory[sim.Police], &r.CrashesByCategory[sim.Government],
			&r.Spawned, &r.Exited, &r.PolicyFaults, &r.EndReason, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BestElapsed returns the longest run for the given policy.
// Returns 0 if no runs exist.
func (s *Store) BestElapsed(policy string) (time.Duration, error) {
	var ms sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(elapsed_ms) FROM runs WHERE policy = ?",
		policy,
	).Scan(&ms)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best run: %w", err)
	}

	if !ms.Valid {
		return 0, nil
	}

	return time.Duration(ms.Int64) * time.Millisecond, nil
}

// ClearRuns deletes all runs for the given policy.
func (s *Store) ClearRuns(policy string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE policy = ?", policy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// PolicyStats contains aggregated statistics for a policy.
type PolicyStats struct {
	Policy      string
	Runs        int
	BestElapsed time.Duration
	AvgElapsed  time.Duration
	TotalCrash  int
	FatalRuns   int
	LastRun     time.Time
}

// GetPolicyStats retrieves aggregated statistics for a specific policy.
func (s *Store) GetPolicyStats(policy string) (*PolicyStats, error) {
	stats := &PolicyStats{Policy: policy}

	var best int64
	var avg float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(elapsed_ms), 0), COALESCE(AVG(elapsed_ms), 0),
		        COALESCE(SUM(crashes), 0),
		        COALESCE(SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END), 0)
		 FROM runs WHERE policy = ?`,
		sim.EndFatalCrash.String(), policy,
	).Scan(&stats.Runs, &best, &avg, &stats.TotalCrash, &stats.FatalRuns)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get policy stats: %w", err)
	}
	stats.BestElapsed = time.Duration(best) * time.Millisecond
	stats.AvgElapsed = time.Duration(avg) * time.Millisecond

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE policy = ? ORDER BY id DESC LIMIT 1`,
		policy,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}
