package services

import (
	"fmt"
	"math"

	"github.com/planhorizon/invsim/pkg/domain/entities"
)

// Simulator runs a forecast-driven periodic-review inventory simulation
// over a demand/forecast series. Periods past the last observed demand are
// projected using the forecast as a stand-in for demand, so a run can
// extend beyond the actual-data horizon.
//
// The simulation is a strictly sequential recurrence: each period's state
// depends on the previous period's mutated in-transit queue and inventory.
// A Simulator is stateless between runs and safe to share.
type Simulator struct{}

// NewSimulator creates a new inventory simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Run simulates the series under the given policy and returns the
// annotated result, one row per input period, in input order.
func (s *Simulator) Run(series entities.Series, policy entities.Policy) (*entities.SimulationResult, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: series is empty", entities.ErrInvalidParameter)
	}
	for i, rec := range series {
		if !rec.HasForecast {
			return nil, fmt.Errorf("%w: period %q (row %d) has no forecast", entities.ErrMalformedInput, rec.Period, i)
		}
	}

	n := len(series)
	lastActual := series.LastActualIndex()

	// Stage 1: forecast errors over the actual prefix and the baseline
	// safety-stock target.
	forecastErrors := make([]float64, n)
	errorDefined := make([]bool, n)
	var historicalErrors []float64
	for t := 0; t <= lastActual; t++ {
		if series[t].HasDemand {
			e := series[t].Forecast - series[t].Demand
			forecastErrors[t] = e
			errorDefined[t] = true
			historicalErrors = append(historicalErrors, e)
		}
	}

	var stdError float64
	if len(historicalErrors) > 0 {
		stdError = PopulationStdDev(historicalErrors)
	} else {
		// Cold start with no demand history: a fraction of the average
		// forecast stands in for the error spread.
		if avgForecast := Mean(series.Forecasts()); avgForecast > 0 {
			stdError = 0.2 * avgForecast
		}
	}

	horizon := policy.LeadTime
	if policy.IncludeReviewPeriodInSS {
		horizon += policy.ReviewPeriod
	}
	timeFactor := math.Sqrt(float64(horizon))
	baseSafetyStock := policy.SafetyFactor * stdError * timeFactor
	rollingWindow := policy.ResolvedRollingWindow()

	// Stage 2: the sequential period loop.
	state := newSimulationState(policy.InitialInventory, policy.LeadTime, baseSafetyStock)
	rows := make([]entities.SimulationRow, n)

	for t := 0; t < n; t++ {
		rec := series[t]

		// Rolling recalculation, within the actual horizon only. A
		// window with no defined errors keeps the previous target.
		if policy.UseRollingSS && t >= rollingWindow && t%rollingWindow == 0 && t <= lastActual {
			var recent []float64
			for k := t - rollingWindow; k < t; k++ {
				if errorDefined[k] {
					recent = append(recent, forecastErrors[k])
				}
			}
			if len(recent) > 0 {
				state.safetyStockTarget = policy.SafetyFactor * PopulationStdDev(recent) * timeFactor
			}
		}

		state.receiveArrival()
		onHandBeforeDemand := state.onHand

		var orderQty float64
		if t%policy.ReviewPeriod == 0 {
			// Cover forecast demand until the next order can arrive,
			// clipped at the end of the horizon.
			futurePeriods := policy.LeadTime + policy.ReviewPeriod
			if remaining := n - t; remaining < futurePeriods {
				futurePeriods = remaining
			}
			var futureDemand float64
			for k := t; k < t+futurePeriods; k++ {
				futureDemand += series[k].Forecast
			}
			orderQty = state.placeOrder(futureDemand)
		} else {
			state.pushPlaceholder()
		}

		isProjection := t > lastActual
		demand := rec.Forecast
		if !isProjection {
			demand = rec.Demand
		}
		stockout := state.fulfill(demand)

		rows[t] = entities.SimulationRow{
			Period:            rec.Period,
			Demand:            rec.Demand,
			HasDemand:         rec.HasDemand,
			Forecast:          rec.Forecast,
			OrderQuantity:     orderQty,
			OnHandInventory:   onHandBeforeDemand,
			SafetyStockTarget: state.safetyStockTarget,
			BelowSafetyStock:  state.onHand < state.safetyStockTarget,
			Stockout:          stockout,
			EndingInventory:   state.onHand,
			ForecastError:     forecastErrors[t],
			HasForecastError:  errorDefined[t],
			IsProjection:      isProjection,
		}
	}

	// Stage 3: output assembly.
	return &entities.SimulationResult{
		Rows:            rows,
		LastActualIndex: lastActual,
		BaseSafetyStock: baseSafetyStock,
		StdError:        stdError,
		TimeFactor:      timeFactor,
	}, nil
}
