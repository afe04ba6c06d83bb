package services

import (
	"context"
	"errors"
	"testing"

	"github.com/planhorizon/invsim/pkg/domain/entities"
	"github.com/planhorizon/invsim/pkg/domain/repositories"
	"github.com/planhorizon/invsim/pkg/infrastructure/events"
	"github.com/planhorizon/invsim/pkg/infrastructure/repositories/memory"
)

func testSeries() entities.Series {
	return entities.Series{
		entities.NewActualRecord("1", 10, 10),
		entities.NewActualRecord("2", 10, 10),
		entities.NewActualRecord("3", 10, 10),
		entities.NewProjectedRecord("4", 10),
		entities.NewProjectedRecord("5", 10),
		entities.NewProjectedRecord("6", 10),
	}
}

func testPolicy() entities.Policy {
	return entities.Policy{
		LeadTime:                1,
		ReviewPeriod:            3,
		SafetyFactor:            1.645,
		IncludeReviewPeriodInSS: true,
	}
}

func TestSimulationService_RunSimulation(t *testing.T) {
	runRepo := memory.NewRunRepository()
	eventStore := events.NewInMemoryEventStore()
	service := NewSimulationService(nil, runRepo, eventStore, nil, nil)

	run, err := service.RunSimulation(context.Background(), "widget-a", testSeries(), testPolicy())
	if err != nil {
		t.Fatalf("RunSimulation failed: %v", err)
	}

	if run.ID == "" {
		t.Error("Expected a generated run ID")
	}
	if run.SeriesName != "widget-a" {
		t.Errorf("Expected series name widget-a, got %s", run.SeriesName)
	}
	if len(run.Result.Rows) != 6 {
		t.Fatalf("Expected 6 result rows, got %d", len(run.Result.Rows))
	}

	// Persisted and retrievable through the service
	got, err := service.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("Expected run %s, got %s", run.ID, got.ID)
	}

	// Lifecycle events on the run's stream
	streamEvents, err := eventStore.ReadEvents(run.ID, 0)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	wantTypes := []string{
		events.SimulationStartedEvent,
		events.SimulationCompletedEvent,
		events.RunPersistedEvent,
	}
	if len(streamEvents) != len(wantTypes) {
		t.Fatalf("Expected %d events, got %d", len(wantTypes), len(streamEvents))
	}
	for i, want := range wantTypes {
		if streamEvents[i].Type() != want {
			t.Errorf("Event %d: expected %s, got %s", i, want, streamEvents[i].Type())
		}
	}
}

func TestSimulationService_InvalidPolicy(t *testing.T) {
	eventStore := events.NewInMemoryEventStore()
	service := NewSimulationService(nil, memory.NewRunRepository(), eventStore, nil, nil)

	badPolicy := entities.Policy{LeadTime: -1, ReviewPeriod: 1}
	_, err := service.RunSimulation(context.Background(), "widget-a", testSeries(), badPolicy)
	if !errors.Is(err, entities.ErrInvalidParameter) {
		t.Fatalf("Expected ErrInvalidParameter, got %v", err)
	}

	// Failure is still reported on the event stream
	all, _ := eventStore.ReadAllEvents(0)
	var sawFailed bool
	for _, e := range all {
		if e.Type() == events.SimulationFailedEvent {
			sawFailed = true
		}
	}
	if !sawFailed {
		t.Error("Expected a simulation.failed event")
	}
}

func TestSimulationService_ListRuns(t *testing.T) {
	service := NewSimulationService(nil, memory.NewRunRepository(), nil, nil, nil)

	for i := 0; i < 3; i++ {
		if _, err := service.RunSimulation(context.Background(), "widget-a", testSeries(), testPolicy()); err != nil {
			t.Fatalf("RunSimulation failed: %v", err)
		}
	}

	runs, err := service.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(runs))
	}
}

func TestSimulationService_NamedSeries(t *testing.T) {
	seriesRepo := memory.NewSeriesRepository()
	service := NewSimulationService(seriesRepo, memory.NewRunRepository(), nil, nil, nil)
	ctx := context.Background()

	if err := service.SaveSeries(ctx, "widget-a", testSeries()); err != nil {
		t.Fatalf("SaveSeries failed: %v", err)
	}

	names, err := service.ListSeries(ctx)
	if err != nil {
		t.Fatalf("ListSeries failed: %v", err)
	}
	if len(names) != 1 || names[0] != "widget-a" {
		t.Errorf("Expected [widget-a], got %v", names)
	}

	run, err := service.RunSimulationByName(ctx, "widget-a", testPolicy())
	if err != nil {
		t.Fatalf("RunSimulationByName failed: %v", err)
	}
	if run.SeriesName != "widget-a" || len(run.Result.Rows) != 6 {
		t.Errorf("Unexpected run: %s with %d rows", run.SeriesName, len(run.Result.Rows))
	}
}

func TestSimulationService_NamedSeriesMissing(t *testing.T) {
	service := NewSimulationService(memory.NewSeriesRepository(), memory.NewRunRepository(), nil, nil, nil)

	_, err := service.RunSimulationByName(context.Background(), "nope", testPolicy())
	if !errors.Is(err, repositories.ErrSeriesNotFound) {
		t.Fatalf("Expected ErrSeriesNotFound, got %v", err)
	}
}

func TestSimulationService_SaveSeriesValidation(t *testing.T) {
	service := NewSimulationService(memory.NewSeriesRepository(), nil, nil, nil, nil)
	ctx := context.Background()

	if err := service.SaveSeries(ctx, "", testSeries()); !errors.Is(err, entities.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for empty name, got %v", err)
	}
	if err := service.SaveSeries(ctx, "widget-a", nil); !errors.Is(err, entities.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for empty series, got %v", err)
	}
}
