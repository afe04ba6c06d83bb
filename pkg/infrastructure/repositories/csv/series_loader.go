package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/planhorizon/invsim/pkg/domain/entities"
)

// Loader handles loading demand/forecast series from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

var expectedHeader = []string{"period", "demand", "forecast"}

// LoadSeries loads a demand/forecast series from a CSV file. An empty
// demand cell marks a projected period; forecast is required everywhere.
func (l *Loader) LoadSeries(filename string) (entities.Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open series file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadSeries(file)
}

// ReadSeries reads a series from r in the same format as LoadSeries.
func (l *Loader) ReadSeries(r io.Reader) (entities.Series, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read series CSV: %v", entities.ErrMalformedInput, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%w: series CSV must have header and at least one data row", entities.ErrMalformedInput)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%w: series CSV header mismatch. Expected: %v, Got: %v", entities.ErrMalformedInput, expectedHeader, header)
	}

	series := make(entities.Series, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%w: series CSV row %d: expected %d columns, got %d", entities.ErrMalformedInput, i+2, len(expectedHeader), len(record))
		}

		rec, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: series CSV row %d: %v", entities.ErrMalformedInput, i+2, err)
		}

		series = append(series, rec)
	}

	return series, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseRecord(record []string) (entities.PeriodRecord, error) {
	period := entities.PeriodLabel(strings.TrimSpace(record[0]))
	if period == "" {
		return entities.PeriodRecord{}, fmt.Errorf("period cannot be empty")
	}

	forecastStr := strings.TrimSpace(record[2])
	forecast, err := strconv.ParseFloat(forecastStr, 64)
	if err != nil {
		return entities.PeriodRecord{}, fmt.Errorf("invalid forecast: %s", record[2])
	}

	demandStr := strings.TrimSpace(record[1])
	if demandStr == "" {
		return entities.NewProjectedRecord(period, forecast), nil
	}

	demand, err := strconv.ParseFloat(demandStr, 64)
	if err != nil {
		return entities.PeriodRecord{}, fmt.Errorf("invalid demand: %s", record[1])
	}

	return entities.NewActualRecord(period, demand, forecast), nil
}
