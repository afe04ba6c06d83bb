package entities

import "fmt"

// Policy holds the periodic-review control parameters for one simulation.
type Policy struct {
	// LeadTime is the number of periods between placing an order and
	// receiving it. Zero means the in-transit queue starts empty and an
	// order arrives at the next receipt point.
	LeadTime int

	// ReviewPeriod is the ordering cadence: orders are placed at periods
	// 0, ReviewPeriod, 2*ReviewPeriod, ...
	ReviewPeriod int

	// SafetyFactor is the service-level z-score (1.645 for 95%).
	SafetyFactor float64

	// InitialInventory is the on-hand stock before the first period.
	InitialInventory float64

	// UseRollingSS enables periodic recalculation of the safety-stock
	// target from a rolling window of forecast errors.
	UseRollingSS bool

	// RollingWindow is the lookback window for rolling recalculation.
	// Zero means "use the default", which is 2*ReviewPeriod.
	RollingWindow int

	// IncludeReviewPeriodInSS selects the safety-stock time factor:
	// sqrt(LeadTime+ReviewPeriod) when true, sqrt(LeadTime) when false.
	IncludeReviewPeriodInSS bool
}

// Validate checks the policy preconditions. Violations are reported as
// ErrInvalidParameter before any simulation state is touched.
func (p Policy) Validate() error {
	if p.LeadTime < 0 {
		return fmt.Errorf("%w: lead time cannot be negative, got %d", ErrInvalidParameter, p.LeadTime)
	}
	if p.ReviewPeriod < 1 {
		return fmt.Errorf("%w: review period must be at least 1, got %d", ErrInvalidParameter, p.ReviewPeriod)
	}
	if p.RollingWindow < 0 {
		return fmt.Errorf("%w: rolling window cannot be negative, got %d", ErrInvalidParameter, p.RollingWindow)
	}
	return nil
}

// ResolvedRollingWindow returns the effective rolling window, applying the
// 2*ReviewPeriod default. Resolved once at simulation start, never per
// iteration.
func (p Policy) ResolvedRollingWindow() int {
	if p.RollingWindow > 0 {
		return p.RollingWindow
	}
	return 2 * p.ReviewPeriod
}
