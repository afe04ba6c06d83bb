package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/planhorizon/invsim/pkg/domain/entities"
)

// Writer handles writing simulation results to CSV files
type Writer struct {
	// Places is the number of decimal places quantities are rounded to.
	Places int32
}

// NewWriter creates a new CSV result writer rounding to 4 places.
func NewWriter() *Writer {
	return &Writer{Places: 4}
}

var resultHeader = []string{
	"period", "demand", "forecast", "order_quantity", "on_hand_inventory",
	"safety_stock_target", "below_safety_stock", "stockout",
	"ending_inventory", "forecast_error", "is_projection",
}

// WriteResult writes one row per simulated period. Booleans are written
// as 0/1; undefined demand and forecast-error cells are left empty.
func (w *Writer) WriteResult(filename string, result *entities.SimulationResult) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create result file %s: %w", filename, err)
	}
	defer file.Close()

	return w.Write(file, result)
}

// Write writes the result rows to out in the same format as WriteResult.
func (w *Writer) Write(out io.Writer, result *entities.SimulationResult) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(resultHeader); err != nil {
		return fmt.Errorf("failed to write result header: %w", err)
	}

	for _, row := range result.Rows {
		record := []string{
			string(row.Period),
			w.optional(row.Demand, row.HasDemand),
			w.round(row.Forecast),
			w.round(row.OrderQuantity),
			w.round(row.OnHandInventory),
			w.round(row.SafetyStockTarget),
			flag(row.BelowSafetyStock),
			flag(row.Stockout),
			w.round(row.EndingInventory),
			w.optional(row.ForecastError, row.HasForecastError),
			flag(row.IsProjection),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write result row for period %s: %w", row.Period, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (w *Writer) round(v float64) string {
	return decimal.NewFromFloat(v).Round(w.Places).String()
}

func (w *Writer) optional(v float64, defined bool) string {
	if !defined {
		return ""
	}
	return w.round(v)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
