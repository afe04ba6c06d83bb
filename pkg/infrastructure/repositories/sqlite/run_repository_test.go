package sqlite

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/planhorizon/invsim/pkg/domain/entities"
	"github.com/planhorizon/invsim/pkg/domain/repositories"
)

func newTestRepo(t *testing.T) *RunRepository {
	t.Helper()
	repo, err := NewRunRepository(":memory:")
	if err != nil {
		t.Fatalf("NewRunRepository failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func makeRun(id string, createdAt time.Time) *entities.SimulationRun {
	return &entities.SimulationRun{
		ID:         id,
		SeriesName: "widget-a",
		CreatedAt:  createdAt,
		Policy: entities.Policy{
			LeadTime:                2,
			ReviewPeriod:            4,
			SafetyFactor:            1.645,
			InitialInventory:        50,
			UseRollingSS:            true,
			RollingWindow:           8,
			IncludeReviewPeriodInSS: true,
		},
		Result: &entities.SimulationResult{
			Rows: []entities.SimulationRow{
				{
					Period:           "2025-01",
					Demand:           100,
					HasDemand:        true,
					Forecast:         95,
					OrderQuantity:    40,
					OnHandInventory:  50,
					EndingInventory:  10,
					ForecastError:    -5,
					HasForecastError: true,
				},
				{
					Period:          "2025-02",
					Forecast:        105,
					OnHandInventory: 50,
					EndingInventory: 0,
					Stockout:        true,
					IsProjection:    true,
				},
			},
			LastActualIndex: 0,
			BaseSafetyStock: 8.05,
			StdError:        2,
			TimeFactor:      2.449489742783178,
		},
	}
}

func TestRunRepository_SaveAndGet(t *testing.T) {
	repo := newTestRepo(t)
	run := makeRun("run-1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	if err := repo.SaveRun(run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := repo.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}

	if got.SeriesName != "widget-a" {
		t.Errorf("Expected series widget-a, got %s", got.SeriesName)
	}
	if got.Policy != run.Policy {
		t.Errorf("Policy did not round-trip: %+v", got.Policy)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("Expected created_at %v, got %v", run.CreatedAt, got.CreatedAt)
	}
	if len(got.Result.Rows) != 2 {
		t.Fatalf("Expected 2 result rows, got %d", len(got.Result.Rows))
	}
	if got.Result.Rows[0].Period != "2025-01" || !got.Result.Rows[1].Stockout {
		t.Errorf("Result rows did not round-trip: %+v", got.Result.Rows)
	}
	if got.Result.LastActualIndex != 0 {
		t.Errorf("Expected last actual index 0, got %d", got.Result.LastActualIndex)
	}
}

func TestRunRepository_SaveReplacesExisting(t *testing.T) {
	repo := newTestRepo(t)
	run := makeRun("run-1", time.Now().UTC())
	if err := repo.SaveRun(run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	run.SeriesName = "widget-b"
	if err := repo.SaveRun(run); err != nil {
		t.Fatalf("SaveRun replace failed: %v", err)
	}

	got, err := repo.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.SeriesName != "widget-b" {
		t.Errorf("Expected replaced series name, got %s", got.SeriesName)
	}
}

func TestRunRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetRun("nope"); !errors.Is(err, repositories.ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRepository_CorruptTimestampRejected(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.db.Exec(`
		INSERT INTO simulation_runs
		(id, series_name, created_at, lead_time, review_period, safety_factor,
		 initial_inventory, use_rolling_ss, rolling_window, include_review_in_ss, result_json)
		VALUES ('run-bad', 'widget-a', 'not-a-timestamp', 1, 1, 1.645, 0, 0, 0, 1, '{}')
	`)
	if err != nil {
		t.Fatalf("Failed to insert corrupt row: %v", err)
	}

	if _, err := repo.GetRun("run-bad"); err == nil || !strings.Contains(err.Error(), "created_at") {
		t.Errorf("Expected created_at parse error, got %v", err)
	}
}

func TestRunRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo.SaveRun(makeRun("old", base))
	repo.SaveRun(makeRun("new", base.Add(time.Hour)))

	runs, err := repo.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "new" || runs[1].ID != "old" {
		t.Errorf("Expected newest-first ordering, got %v", []string{runs[0].ID, runs[1].ID})
	}
}

func TestRunRepository_EmptyIDRejected(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.SaveRun(makeRun("", time.Now())); err == nil {
		t.Error("Expected error for empty run ID")
	}
}
