package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Callers match
// with errors.Is; messages carry the missing key.
var (
	ErrRunNotFound    = errors.New("run not found")
	ErrSeriesNotFound = errors.New("series not found")
)
