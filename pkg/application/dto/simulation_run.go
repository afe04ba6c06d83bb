package dto

import (
	"fmt"
	"time"

	"github.com/planhorizon/invsim/pkg/domain/entities"
)

// PolicyRequest is the wire form of a review policy. The include flag is a
// pointer so an omitted key defaults to true while an explicit false sticks.
type PolicyRequest struct {
	LeadTime                int     `json:"lead_time"`
	ReviewPeriod            int     `json:"review_period"`
	SafetyFactor            float64 `json:"safety_factor"`
	InitialInventory        float64 `json:"initial_inventory"`
	UseRollingSS            bool    `json:"use_rolling_ss"`
	RollingWindow           int     `json:"rolling_window"`
	IncludeReviewPeriodInSS *bool   `json:"include_review_period_in_ss"`
}

// ToPolicy converts the request to the domain policy.
func (p PolicyRequest) ToPolicy() entities.Policy {
	includeReview := true
	if p.IncludeReviewPeriodInSS != nil {
		includeReview = *p.IncludeReviewPeriodInSS
	}
	return entities.Policy{
		LeadTime:                p.LeadTime,
		ReviewPeriod:            p.ReviewPeriod,
		SafetyFactor:            p.SafetyFactor,
		InitialInventory:        p.InitialInventory,
		UseRollingSS:            p.UseRollingSS,
		RollingWindow:           p.RollingWindow,
		IncludeReviewPeriodInSS: includeReview,
	}
}

// PeriodRequest is one input row. A null demand marks a projected period.
type PeriodRequest struct {
	Period   string   `json:"period"`
	Demand   *float64 `json:"demand"`
	Forecast *float64 `json:"forecast"`
}

// SimulationRequest asks for one simulation. The series is either inline or,
// when the rows are omitted, looked up by series_name in the series store.
type SimulationRequest struct {
	SeriesName string          `json:"series_name"`
	Series     []PeriodRequest `json:"series"`
	Policy     PolicyRequest   `json:"policy"`
}

// ToSeries converts the inline rows to a domain series.
func (r SimulationRequest) ToSeries() (entities.Series, error) {
	return toSeries(r.Series)
}

// SeriesRequest registers a named series for later simulation by name.
type SeriesRequest struct {
	Name   string          `json:"name"`
	Series []PeriodRequest `json:"series"`
}

// ToSeries converts the rows to a domain series.
func (r SeriesRequest) ToSeries() (entities.Series, error) {
	return toSeries(r.Series)
}

func toSeries(rows []PeriodRequest) (entities.Series, error) {
	series := make(entities.Series, 0, len(rows))
	for i, row := range rows {
		if row.Period == "" {
			return nil, fmt.Errorf("%w: series row %d has no period", entities.ErrMalformedInput, i)
		}
		if row.Forecast == nil {
			return nil, fmt.Errorf("%w: series row %d (period %q) has no forecast", entities.ErrMalformedInput, i, row.Period)
		}
		label := entities.PeriodLabel(row.Period)
		if row.Demand != nil {
			series = append(series, entities.NewActualRecord(label, *row.Demand, *row.Forecast))
		} else {
			series = append(series, entities.NewProjectedRecord(label, *row.Forecast))
		}
	}
	return series, nil
}

// SimulationRow is the wire form of one output period.
type SimulationRow struct {
	Period            string   `json:"period"`
	Demand            *float64 `json:"demand"`
	Forecast          float64  `json:"forecast"`
	OrderQuantity     float64  `json:"order_quantity"`
	OnHandInventory   float64  `json:"on_hand_inventory"`
	SafetyStockTarget float64  `json:"safety_stock_target"`
	BelowSafetyStock  bool     `json:"below_safety_stock"`
	Stockout          bool     `json:"stockout"`
	EndingInventory   float64  `json:"ending_inventory"`
	ForecastError     *float64 `json:"forecast_error"`
	IsProjection      bool     `json:"is_projection"`
}

// RunSummary is the headline numbers of one run.
type RunSummary struct {
	RunID           string    `json:"run_id"`
	SeriesName      string    `json:"series_name"`
	CreatedAt       time.Time `json:"created_at"`
	Periods         int       `json:"periods"`
	OrdersPlaced    int       `json:"orders_placed"`
	Stockouts       int       `json:"stockouts"`
	BaseSafetyStock float64   `json:"base_safety_stock"`
	StdError        float64   `json:"std_error"`
	LastActualIndex int       `json:"last_actual_index"`
}

// RunResponse is the full wire form of a completed run.
type RunResponse struct {
	RunSummary
	Policy PolicyRequest   `json:"policy"`
	Rows   []SimulationRow `json:"rows"`
}

// NewRunSummary builds the summary view of a run.
func NewRunSummary(run *entities.SimulationRun) RunSummary {
	return RunSummary{
		RunID:           run.ID,
		SeriesName:      run.SeriesName,
		CreatedAt:       run.CreatedAt,
		Periods:         len(run.Result.Rows),
		OrdersPlaced:    run.Result.OrdersPlaced(),
		Stockouts:       run.Result.Stockouts(),
		BaseSafetyStock: run.Result.BaseSafetyStock,
		StdError:        run.Result.StdError,
		LastActualIndex: run.Result.LastActualIndex,
	}
}

// NewRunResponse builds the full view of a run.
func NewRunResponse(run *entities.SimulationRun) RunResponse {
	rows := make([]SimulationRow, len(run.Result.Rows))
	for i, row := range run.Result.Rows {
		rows[i] = SimulationRow{
			Period:            string(row.Period),
			Demand:            optional(row.Demand, row.HasDemand),
			Forecast:          row.Forecast,
			OrderQuantity:     row.OrderQuantity,
			OnHandInventory:   row.OnHandInventory,
			SafetyStockTarget: row.SafetyStockTarget,
			BelowSafetyStock:  row.BelowSafetyStock,
			Stockout:          row.Stockout,
			EndingInventory:   row.EndingInventory,
			ForecastError:     optional(row.ForecastError, row.HasForecastError),
			IsProjection:      row.IsProjection,
		}
	}

	policy := run.Policy
	includeReview := policy.IncludeReviewPeriodInSS
	return RunResponse{
		RunSummary: NewRunSummary(run),
		Policy: PolicyRequest{
			LeadTime:                policy.LeadTime,
			ReviewPeriod:            policy.ReviewPeriod,
			SafetyFactor:            policy.SafetyFactor,
			InitialInventory:        policy.InitialInventory,
			UseRollingSS:            policy.UseRollingSS,
			RollingWindow:           policy.RollingWindow,
			IncludeReviewPeriodInSS: &includeReview,
		},
		Rows: rows,
	}
}

func optional(v float64, defined bool) *float64 {
	if !defined {
		return nil
	}
	return &v
}
