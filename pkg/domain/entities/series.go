package entities

// PeriodLabel is an opaque period identifier. Labels are ordered by their
// position in the series, not by their value, so numeric indices, ISO weeks
// or month names all work.
type PeriodLabel string

// PeriodRecord is one row of the input series. Demand is optional: future
// periods carry only a forecast. Forecast is required for every period,
// actual or projected, because it drives both order sizing and the
// projected-demand stand-in.
type PeriodRecord struct {
	Period      PeriodLabel
	Demand      float64
	HasDemand   bool
	Forecast    float64
	HasForecast bool
}

// NewActualRecord creates a record for a period with observed demand.
func NewActualRecord(period PeriodLabel, demand, forecast float64) PeriodRecord {
	return PeriodRecord{
		Period:      period,
		Demand:      demand,
		HasDemand:   true,
		Forecast:    forecast,
		HasForecast: true,
	}
}

// NewProjectedRecord creates a record for a future period that has a
// forecast but no actual demand yet.
func NewProjectedRecord(period PeriodLabel, forecast float64) PeriodRecord {
	return PeriodRecord{
		Period:      period,
		Forecast:    forecast,
		HasForecast: true,
	}
}

// Series is a chronologically ordered demand/forecast table. Order is
// significant and preserved through simulation. Actual-demand records are
// assumed to form a contiguous prefix.
type Series []PeriodRecord

// LastActualIndex returns the index of the last record with observed
// demand, or -1 when the whole series is forecast-only.
func (s Series) LastActualIndex() int {
	last := -1
	for i, rec := range s {
		if rec.HasDemand {
			last = i
		}
	}
	return last
}

// Forecasts returns the forecast column in series order.
func (s Series) Forecasts() []float64 {
	forecasts := make([]float64, len(s))
	for i, rec := range s {
		forecasts[i] = rec.Forecast
	}
	return forecasts
}
