// Package sqlite provides a SQLite-backed run repository. The schema is
// auto-migrated on New; use ":memory:" for an in-memory database.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/planhorizon/invsim/pkg/domain/entities"
	"github.com/planhorizon/invsim/pkg/domain/repositories"
)

// RunRepository persists simulation runs in SQLite. Policy parameters are
// stored as columns so runs can be queried by configuration; the result
// rows are stored as a JSON blob.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository opens (or creates) the database at dbPath and migrates
// the schema.
func NewRunRepository(dbPath string) (*RunRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &RunRepository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

// Verify interface compliance
var _ repositories.RunRepository = (*RunRepository)(nil)

// Close closes the database connection.
func (r *RunRepository) Close() error {
	return r.db.Close()
}

func (r *RunRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id TEXT PRIMARY KEY,
		series_name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		lead_time INTEGER NOT NULL,
		review_period INTEGER NOT NULL,
		safety_factor REAL NOT NULL,
		initial_inventory REAL NOT NULL,
		use_rolling_ss BOOLEAN NOT NULL,
		rolling_window INTEGER NOT NULL,
		include_review_in_ss BOOLEAN NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_series_name
		ON simulation_runs(series_name);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at
		ON simulation_runs(created_at DESC);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveRun stores a completed run, replacing any run with the same ID.
func (r *RunRepository) SaveRun(run *entities.SimulationRun) error {
	if run.ID == "" {
		return fmt.Errorf("run ID cannot be empty")
	}

	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result for run %s: %w", run.ID, err)
	}

	query := `
		INSERT INTO simulation_runs
		(id, series_name, created_at, lead_time, review_period, safety_factor,
		 initial_inventory, use_rolling_ss, rolling_window, include_review_in_ss, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			series_name = excluded.series_name,
			result_json = excluded.result_json
	`

	_, err = r.db.Exec(query,
		run.ID,
		run.SeriesName,
		run.CreatedAt.UTC().Format(time.RFC3339),
		run.Policy.LeadTime,
		run.Policy.ReviewPeriod,
		run.Policy.SafetyFactor,
		run.Policy.InitialInventory,
		run.Policy.UseRollingSS,
		run.Policy.RollingWindow,
		run.Policy.IncludeReviewPeriodInSS,
		string(resultJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	return nil
}

// GetRun returns the run with the given ID.
func (r *RunRepository) GetRun(id string) (*entities.SimulationRun, error) {
	query := `
		SELECT id, series_name, created_at, lead_time, review_period, safety_factor,
		       initial_inventory, use_rolling_ss, rolling_window, include_review_in_ss, result_json
		FROM simulation_runs
		WHERE id = ?
	`

	run, err := scanRun(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", repositories.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns all stored runs, newest first.
func (r *RunRepository) ListRuns() ([]*entities.SimulationRun, error) {
	query := `
		SELECT id, series_name, created_at, lead_time, review_period, safety_factor,
		       initial_inventory, use_rolling_ss, rolling_window, include_review_in_ss, result_json
		FROM simulation_runs
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*entities.SimulationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*entities.SimulationRun, error) {
	var (
		run        entities.SimulationRun
		createdAt  string
		resultJSON string
	)

	err := row.Scan(
		&run.ID,
		&run.SeriesName,
		&createdAt,
		&run.Policy.LeadTime,
		&run.Policy.ReviewPeriod,
		&run.Policy.SafetyFactor,
		&run.Policy.InitialInventory,
		&run.Policy.UseRollingSS,
		&run.Policy.RollingWindow,
		&run.Policy.IncludeReviewPeriodInSS,
		&resultJSON,
	)
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &run.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}

	return &run, nil
}
