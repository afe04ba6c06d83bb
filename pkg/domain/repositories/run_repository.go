package repositories

import "github.com/planhorizon/invsim/pkg/domain/entities"

// RunRepository persists completed simulation runs
type RunRepository interface {
	SaveRun(run *entities.SimulationRun) error
	GetRun(id string) (*entities.SimulationRun, error)
	ListRuns() ([]*entities.SimulationRun, error)
}
