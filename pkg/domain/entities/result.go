package entities

// SimulationRow is one period of simulator output: the input record
// augmented with the computed columns.
type SimulationRow struct {
	Period    PeriodLabel
	Demand    float64
	HasDemand bool
	Forecast  float64

	// OrderQuantity is the order placed this period, zero outside the
	// review cadence.
	OrderQuantity float64

	// OnHandInventory is the stock level after arrivals, before demand.
	OnHandInventory float64

	// SafetyStockTarget is the target active while this period was
	// simulated (post rolling update, if one fired here).
	SafetyStockTarget float64

	// BelowSafetyStock reports ending inventory under the active target.
	BelowSafetyStock bool

	// Stockout reports demand exceeding available stock; the excess is
	// lost, not backordered.
	Stockout bool

	// EndingInventory is the stock level after demand, never negative.
	EndingInventory float64

	// ForecastError is forecast minus demand, defined only for periods
	// with observed demand.
	ForecastError    float64
	HasForecastError bool

	// IsProjection marks periods past the last observed demand, where
	// the forecast stands in for demand.
	IsProjection bool
}

// SimulationResult is the complete output of one simulation run.
type SimulationResult struct {
	Rows []SimulationRow

	// LastActualIndex is the index of the last period with observed
	// demand, -1 for a forecast-only run.
	LastActualIndex int

	// BaseSafetyStock is the Stage 1 target before any rolling updates.
	BaseSafetyStock float64

	// StdError is the population standard deviation of historical
	// forecast errors, or the cold-start proxy when there are none.
	StdError float64

	// TimeFactor is the sqrt(horizon) multiplier used in every
	// safety-stock calculation of the run.
	TimeFactor float64
}

// OrdersPlaced counts periods with a nonzero order.
func (r *SimulationResult) OrdersPlaced() int {
	count := 0
	for _, row := range r.Rows {
		if row.OrderQuantity > 0 {
			count++
		}
	}
	return count
}

// Stockouts counts periods flagged as stockouts.
func (r *SimulationResult) Stockouts() int {
	count := 0
	for _, row := range r.Rows {
		if row.Stockout {
			count++
		}
	}
	return count
}

// ProjectedFrom returns the index of the first projected period, or -1 if
// every period has actual demand.
func (r *SimulationResult) ProjectedFrom() int {
	if r.LastActualIndex >= len(r.Rows)-1 {
		return -1
	}
	return r.LastActualIndex + 1
}
