package entities

import "testing"

func TestSeriesLastActualIndex(t *testing.T) {
	testCases := []struct {
		name   string
		series Series
		want   int
	}{
		{"empty", Series{}, -1},
		{
			"forecast only",
			Series{NewProjectedRecord("1", 10), NewProjectedRecord("2", 12)},
			-1,
		},
		{
			"all actual",
			Series{NewActualRecord("1", 9, 10), NewActualRecord("2", 11, 10)},
			1,
		},
		{
			"actual prefix",
			Series{
				NewActualRecord("1", 9, 10),
				NewActualRecord("2", 11, 10),
				NewProjectedRecord("3", 10),
				NewProjectedRecord("4", 10),
			},
			1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.series.LastActualIndex(); got != tc.want {
				t.Errorf("Expected last actual index %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSeriesForecasts(t *testing.T) {
	series := Series{
		NewActualRecord("1", 9, 10),
		NewProjectedRecord("2", 12),
	}
	forecasts := series.Forecasts()
	if len(forecasts) != 2 || forecasts[0] != 10 || forecasts[1] != 12 {
		t.Errorf("Expected forecasts [10 12], got %v", forecasts)
	}
}
