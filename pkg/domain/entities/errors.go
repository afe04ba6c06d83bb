package entities

import "errors"

// Sentinel errors for the simulator's failure taxonomy. Callers match with
// errors.Is; messages carry the offending parameter or period.
var (
	// ErrInvalidParameter covers configuration that makes simulation
	// impossible: negative lead time, review period below one, or an
	// empty series.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMalformedInput covers series rows that break the input contract,
	// such as a period with no forecast value.
	ErrMalformedInput = errors.New("malformed input")
)
