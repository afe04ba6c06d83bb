package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/planhorizon/invsim/pkg/domain/entities"
	"github.com/planhorizon/invsim/pkg/domain/repositories"
)

// RunRepository provides in-memory storage for simulation runs
type RunRepository struct {
	mu   sync.RWMutex
	runs map[string]*entities.SimulationRun
}

// NewRunRepository creates a new in-memory run repository
func NewRunRepository() *RunRepository {
	return &RunRepository{
		runs: make(map[string]*entities.SimulationRun),
	}
}

// Verify interface compliance
var _ repositories.RunRepository = (*RunRepository)(nil)

// SaveRun stores a completed run keyed by its ID
func (r *RunRepository) SaveRun(run *entities.SimulationRun) error {
	if run.ID == "" {
		return fmt.Errorf("run ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

// GetRun returns the run with the given ID
func (r *RunRepository) GetRun(id string) (*entities.SimulationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrRunNotFound, id)
	}
	return run, nil
}

// ListRuns returns all stored runs, newest first
func (r *RunRepository) ListRuns() ([]*entities.SimulationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*entities.SimulationRun, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}
