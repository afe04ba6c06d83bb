package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planhorizon/invsim/pkg/domain/entities"
	"github.com/planhorizon/invsim/pkg/domain/repositories"
	domainservices "github.com/planhorizon/invsim/pkg/domain/services"
	"github.com/planhorizon/invsim/pkg/infrastructure/events"
	"github.com/planhorizon/invsim/pkg/infrastructure/logging"
	"github.com/planhorizon/invsim/pkg/infrastructure/metrics"
)

// SimulationService orchestrates a simulation run: execute the simulator,
// persist the run and emit lifecycle events. Event store and metrics are
// optional; a nil run repository disables persistence, a nil series
// repository disables the named-series operations.
type SimulationService struct {
	simulator  *domainservices.Simulator
	seriesRepo repositories.SeriesRepository
	runRepo    repositories.RunRepository
	eventStore events.EventStore
	metrics    *metrics.Metrics
	logger     *logging.Logger
}

// NewSimulationService creates a new simulation service.
func NewSimulationService(
	seriesRepo repositories.SeriesRepository,
	runRepo repositories.RunRepository,
	eventStore events.EventStore,
	m *metrics.Metrics,
	logger *logging.Logger,
) *SimulationService {
	if logger == nil {
		logger = logging.New(logging.DefaultConfig("invsim"))
	}
	return &SimulationService{
		simulator:  domainservices.NewSimulator(),
		seriesRepo: seriesRepo,
		runRepo:    runRepo,
		eventStore: eventStore,
		metrics:    m,
		logger:     logger.WithComponent("simulation_service"),
	}
}

// RunSimulation simulates the series under the policy and returns the
// persisted run.
func (s *SimulationService) RunSimulation(
	ctx context.Context,
	seriesName string,
	series entities.Series,
	policy entities.Policy,
) (*entities.SimulationRun, error) {
	runID := uuid.NewString()
	log := s.logger.WithRunID(runID)

	s.emit(runID, events.NewSimulationStartedEvent(runID, seriesName, len(series), policy))
	log.Info("simulation started",
		"series", seriesName,
		"periods", len(series),
		"lead_time", policy.LeadTime,
		"review_period", policy.ReviewPeriod)

	start := time.Now()
	result, err := s.simulator.Run(series, policy)
	elapsed := time.Since(start)

	if err != nil {
		s.emit(runID, events.NewSimulationFailedEvent(runID, seriesName, err.Error()))
		if s.metrics != nil {
			s.metrics.ObserveRun(elapsed, 0, 0, err)
		}
		log.WithError(err).Error("simulation failed")
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObserveRun(elapsed, result.Stockouts(), result.OrdersPlaced(), nil)
	}
	s.emit(runID, events.NewSimulationCompletedEvent(runID, seriesName, result))

	run := &entities.SimulationRun{
		ID:         runID,
		SeriesName: seriesName,
		CreatedAt:  time.Now().UTC(),
		Policy:     policy,
		Result:     result,
	}

	if s.runRepo != nil {
		if err := s.runRepo.SaveRun(run); err != nil {
			log.WithError(err).Error("failed to persist run")
			return nil, err
		}
		s.emit(runID, events.NewRunPersistedEvent(runID, "run_repository"))
	}

	log.Info("simulation completed",
		"duration_ms", elapsed.Milliseconds(),
		"orders_placed", result.OrdersPlaced(),
		"stockouts", result.Stockouts())

	return run, nil
}

// RunSimulationByName simulates a previously registered series.
func (s *SimulationService) RunSimulationByName(
	ctx context.Context,
	name string,
	policy entities.Policy,
) (*entities.SimulationRun, error) {
	series, err := s.seriesRepo.GetSeries(name)
	if err != nil {
		return nil, err
	}
	return s.RunSimulation(ctx, name, series, policy)
}

// SaveSeries registers a named series for later simulation by name.
func (s *SimulationService) SaveSeries(ctx context.Context, name string, series entities.Series) error {
	if name == "" {
		return fmt.Errorf("%w: series name cannot be empty", entities.ErrInvalidParameter)
	}
	if len(series) == 0 {
		return fmt.Errorf("%w: series is empty", entities.ErrInvalidParameter)
	}
	if err := s.seriesRepo.SaveSeries(name, series); err != nil {
		return err
	}
	s.logger.Info("series registered", "series", name, "periods", len(series))
	return nil
}

// ListSeries returns the registered series names.
func (s *SimulationService) ListSeries(ctx context.Context) ([]string, error) {
	return s.seriesRepo.ListSeries()
}

// GetRun returns a previously persisted run.
func (s *SimulationService) GetRun(ctx context.Context, id string) (*entities.SimulationRun, error) {
	return s.runRepo.GetRun(id)
}

// ListRuns returns all persisted runs, newest first.
func (s *SimulationService) ListRuns(ctx context.Context) ([]*entities.SimulationRun, error) {
	return s.runRepo.ListRuns()
}

func (s *SimulationService) emit(runID string, event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(runID, event); err != nil {
		s.logger.WithError(err).Warn("failed to append event", "event_type", event.Type())
	}
}
