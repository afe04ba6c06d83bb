package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/planhorizon/invsim/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		seriesFile = flag.String(
			"series",
			"",
			"Path to series CSV file (period,demand,forecast)",
		)
		configFile       = flag.String("config", "", "Path to YAML scenario configuration")
		scenario         = flag.String("scenario", "", "Scenario name within the config file")
		database         = flag.String("db", "", "SQLite database for run persistence (optional)")
		leadTime         = flag.Int("lead-time", 1, "Periods between ordering and receiving")
		reviewPeriod     = flag.Int("review-period", 1, "Ordering cadence in periods")
		safetyFactor     = flag.Float64("safety-factor", 1.645, "Service-level z-score")
		initialInventory = flag.Float64("initial", 0, "Initial on-hand inventory")
		useRollingSS     = flag.Bool("rolling-ss", false, "Recalculate safety stock on a rolling window")
		rollingWindow    = flag.Int("rolling-window", 0, "Rolling window size (0 = 2*review-period)")
		includeReview    = flag.Bool("ss-include-review", true, "Include review period in the safety stock horizon")
		outputDir        = flag.String("output", "", "Output directory for results (optional)")
		reportPath       = flag.String("report", "", "HTML report path (format html)")
		format           = flag.String("format", "text", "Output format: text, json, csv, html")
		verbose          = flag.Bool("verbose", false, "Enable verbose output")
		help             = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		SeriesFile:              *seriesFile,
		ConfigFile:              *configFile,
		Scenario:                *scenario,
		Database:                *database,
		LeadTime:                *leadTime,
		ReviewPeriod:            *reviewPeriod,
		SafetyFactor:            *safetyFactor,
		InitialInventory:        *initialInventory,
		UseRollingSS:            *useRollingSS,
		RollingWindow:           *rollingWindow,
		IncludeReviewPeriodInSS: *includeReview,
		OutputDir:               *outputDir,
		ReportPath:              *reportPath,
		Format:                  *format,
		Verbose:                 *verbose,
		Help:                    *help,
	}

	// Create and execute command
	cmd := commands.NewSimulateCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
