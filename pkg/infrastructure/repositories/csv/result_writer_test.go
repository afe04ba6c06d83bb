package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/planhorizon/invsim/pkg/domain/entities"
)

func TestWriteResult(t *testing.T) {
	result := &entities.SimulationResult{
		Rows: []entities.SimulationRow{
			{
				Period:            "2025-01",
				Demand:            100,
				HasDemand:         true,
				Forecast:          95,
				OrderQuantity:     40.123456,
				OnHandInventory:   10,
				SafetyStockTarget: 5.5,
				BelowSafetyStock:  false,
				Stockout:          true,
				EndingInventory:   0,
				ForecastError:     -5,
				HasForecastError:  true,
			},
			{
				Period:          "2025-02",
				Forecast:        105,
				OnHandInventory: 40,
				EndingInventory: 35,
				IsProjection:    true,
			},
		},
		LastActualIndex: 0,
	}

	var buf bytes.Buffer
	if err := NewWriter().Write(&buf, result); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(resultHeader, ",") {
		t.Errorf("Unexpected header: %s", lines[0])
	}

	// Booleans as 0/1, order quantity rounded to 4 places
	if lines[1] != "2025-01,100,95,40.1235,10,5.5,0,1,0,-5,0" {
		t.Errorf("Unexpected actual row: %s", lines[1])
	}
	// Missing demand and forecast error leave empty cells
	if lines[2] != "2025-02,,105,0,40,0,0,0,35,,1" {
		t.Errorf("Unexpected projected row: %s", lines[2])
	}
}
