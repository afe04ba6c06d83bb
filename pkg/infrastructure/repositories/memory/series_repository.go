package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/planhorizon/invsim/pkg/domain/entities"
	"github.com/planhorizon/invsim/pkg/domain/repositories"
)

// SeriesRepository provides in-memory storage for named demand/forecast series
type SeriesRepository struct {
	mu     sync.RWMutex
	series map[string]entities.Series
}

// NewSeriesRepository creates a new in-memory series repository
func NewSeriesRepository() *SeriesRepository {
	return &SeriesRepository{
		series: make(map[string]entities.Series),
	}
}

// Verify interface compliance
var _ repositories.SeriesRepository = (*SeriesRepository)(nil)

// GetSeries returns the series stored under name
func (r *SeriesRepository) GetSeries(name string) (entities.Series, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	series, ok := r.series[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrSeriesNotFound, name)
	}
	// Copy so callers cannot mutate stored records
	out := make(entities.Series, len(series))
	copy(out, series)
	return out, nil
}

// SaveSeries stores a series under name, replacing any existing one
func (r *SeriesRepository) SaveSeries(name string, series entities.Series) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make(entities.Series, len(series))
	copy(stored, series)
	r.series[name] = stored
	return nil
}

// ListSeries returns the stored series names in sorted order
func (r *SeriesRepository) ListSeries() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.series))
	for name := range r.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
