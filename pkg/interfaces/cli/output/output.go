package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/planhorizon/invsim/pkg/application/dto"
	"github.com/planhorizon/invsim/pkg/domain/entities"
	csvrepo "github.com/planhorizon/invsim/pkg/infrastructure/repositories/csv"
)

// Config holds configuration for output generation
type Config struct {
	Format         string
	OutputDir      string
	ReportPath     string
	Verbose        bool
	SimulationTime time.Duration
}

// Generate creates output for a run in the specified format
func Generate(run *entities.SimulationRun, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(run, config)
	case "json":
		return generateJSONOutput(run, config)
	case "csv":
		return generateCSVOutput(run, config)
	case "html":
		return generateHTMLOutput(run, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(run *entities.SimulationRun, config Config) error {
	result := run.Result

	fmt.Printf("Simulation Results: %s\n", run.SeriesName)
	fmt.Printf("========================================\n\n")

	fmt.Printf("Run ID: %s\n", run.ID)
	fmt.Printf("Periods: %d (actuals through index %d)\n", len(result.Rows), result.LastActualIndex)
	fmt.Printf("Orders Placed: %d\n", result.OrdersPlaced())
	fmt.Printf("Stockouts: %d\n", result.Stockouts())
	fmt.Printf("Safety Stock Target: %.2f (std error %.2f, time factor %.2f)\n",
		result.BaseSafetyStock, result.StdError, result.TimeFactor)
	if config.SimulationTime > 0 {
		fmt.Printf("Simulation Time: %v\n", config.SimulationTime)
	}
	fmt.Println()

	fmt.Printf("%-12s %-10s %-10s %-8s %-10s %-10s %-8s %-10s %-6s\n",
		"Period", "Demand", "Forecast", "Order", "On Hand", "SS Target", "Below", "Ending", "Flags")
	fmt.Printf("%-12s %-10s %-10s %-8s %-10s %-10s %-8s %-10s %-6s\n",
		"------------", "----------", "----------", "--------", "----------", "----------", "--------", "----------", "------")

	for _, row := range result.Rows {
		demand := "-"
		if row.HasDemand {
			demand = fmt.Sprintf("%.1f", row.Demand)
		}
		flags := ""
		if row.Stockout {
			flags += "S"
		}
		if row.IsProjection {
			flags += "P"
		}
		below := "no"
		if row.BelowSafetyStock {
			below = "yes"
		}
		fmt.Printf("%-12s %-10s %-10.1f %-8.1f %-10.1f %-10.2f %-8s %-10.1f %-6s\n",
			row.Period, demand, row.Forecast, row.OrderQuantity,
			row.OnHandInventory, row.SafetyStockTarget, below, row.EndingInventory, flags)
	}
	fmt.Println()

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(run *entities.SimulationRun, config Config) error {
	response := dto.NewRunResponse(run)
	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "simulation_result.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(run *entities.SimulationRun, config Config) error {
	if config.OutputDir == "" {
		return csvrepo.NewWriter().Write(os.Stdout, run.Result)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "simulation_result.csv")
	if err := csvrepo.NewWriter().WriteResult(filename, run.Result); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Printf("CSV results saved to: %s\n", filename)
	}

	return nil
}
