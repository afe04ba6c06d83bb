package events

import (
	"github.com/planhorizon/invsim/pkg/domain/entities"
)

const (
	SimulationStartedEvent   = "simulation.started"
	SimulationCompletedEvent = "simulation.completed"
	SimulationFailedEvent    = "simulation.failed"

	RunPersistedEvent = "run.persisted"
)

type SimulationStarted struct {
	RunID      string          `json:"run_id"`
	SeriesName string          `json:"series_name"`
	Periods    int             `json:"periods"`
	Policy     entities.Policy `json:"policy"`
}

type SimulationCompleted struct {
	RunID        string  `json:"run_id"`
	SeriesName   string  `json:"series_name"`
	OrdersPlaced int     `json:"orders_placed"`
	Stockouts    int     `json:"stockouts"`
	StdError     float64 `json:"std_error"`
}

type SimulationFailed struct {
	RunID      string `json:"run_id"`
	SeriesName string `json:"series_name"`
	Reason     string `json:"reason"`
}

type RunPersisted struct {
	RunID string `json:"run_id"`
	Store string `json:"store"`
}

func NewSimulationStartedEvent(runID, seriesName string, periods int, policy entities.Policy) Event {
	return NewEvent(SimulationStartedEvent, runID, SimulationStarted{
		RunID:      runID,
		SeriesName: seriesName,
		Periods:    periods,
		Policy:     policy,
	})
}

func NewSimulationCompletedEvent(runID, seriesName string, result *entities.SimulationResult) Event {
	return NewEvent(SimulationCompletedEvent, runID, SimulationCompleted{
		RunID:        runID,
		SeriesName:   seriesName,
		OrdersPlaced: result.OrdersPlaced(),
		Stockouts:    result.Stockouts(),
		StdError:     result.StdError,
	})
}

func NewSimulationFailedEvent(runID, seriesName string, reason string) Event {
	return NewEvent(SimulationFailedEvent, runID, SimulationFailed{
		RunID:      runID,
		SeriesName: seriesName,
		Reason:     reason,
	})
}

func NewRunPersistedEvent(runID, store string) Event {
	return NewEvent(RunPersistedEvent, runID, RunPersisted{RunID: runID, Store: store})
}
