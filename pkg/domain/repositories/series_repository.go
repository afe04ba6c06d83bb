package repositories

import "github.com/planhorizon/invsim/pkg/domain/entities"

// SeriesRepository provides access to named demand/forecast series
type SeriesRepository interface {
	GetSeries(name string) (entities.Series, error)
	SaveSeries(name string, series entities.Series) error
	ListSeries() ([]string, error)
}
