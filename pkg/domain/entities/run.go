package entities

import "time"

// SimulationRun pairs a completed simulation with its identity: the
// policy it ran under, the series it ran on and when it ran.
type SimulationRun struct {
	ID         string
	SeriesName string
	CreatedAt  time.Time
	Policy     Policy
	Result     *SimulationResult
}
