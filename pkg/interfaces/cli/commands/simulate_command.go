package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	appservices "github.com/planhorizon/invsim/pkg/application/services"
	"github.com/planhorizon/invsim/pkg/domain/entities"
	"github.com/planhorizon/invsim/pkg/domain/repositories"
	configfile "github.com/planhorizon/invsim/pkg/infrastructure/config"
	"github.com/planhorizon/invsim/pkg/infrastructure/events"
	"github.com/planhorizon/invsim/pkg/infrastructure/logging"
	"github.com/planhorizon/invsim/pkg/infrastructure/repositories/csv"
	"github.com/planhorizon/invsim/pkg/infrastructure/repositories/sqlite"
	"github.com/planhorizon/invsim/pkg/interfaces/cli/output"
)

// Config holds configuration for the simulate command
type Config struct {
	SeriesFile              string
	ConfigFile              string
	Scenario                string
	Database                string
	LeadTime                int
	ReviewPeriod            int
	SafetyFactor            float64
	InitialInventory        float64
	UseRollingSS            bool
	RollingWindow           int
	IncludeReviewPeriodInSS bool
	OutputDir               string
	ReportPath              string
	Format                  string
	Verbose                 bool
	Help                    bool
}

// SimulateCommand runs one simulation from the command line
type SimulateCommand struct {
	config Config
}

// NewSimulateCommand creates a new simulate command with the given configuration
func NewSimulateCommand(config Config) *SimulateCommand {
	return &SimulateCommand{
		config: config,
	}
}

// Execute runs the simulate command
func (c *SimulateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	seriesFile, policy, err := c.resolveScenario()
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("Inventory Simulator CLI\n")
		fmt.Printf("Series file: %s\n", seriesFile)
		fmt.Printf("Policy: lead_time=%d review_period=%d safety_factor=%.3f\n",
			policy.LeadTime, policy.ReviewPeriod, policy.SafetyFactor)
		fmt.Println()
	}

	series, err := csv.NewLoader().LoadSeries(seriesFile)
	if err != nil {
		return fmt.Errorf("error loading series: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Loaded %d periods (%d with actual demand)\n\n",
			len(series), series.LastActualIndex()+1)
	}

	var runRepo repositories.RunRepository
	if c.config.Database != "" {
		sqliteRepo, err := sqlite.NewRunRepository(c.config.Database)
		if err != nil {
			return fmt.Errorf("error opening run database: %w", err)
		}
		defer sqliteRepo.Close()
		runRepo = sqliteRepo
	}

	logLevel := logging.LevelWarn
	if c.config.Verbose {
		logLevel = logging.LevelInfo
	}
	logger := logging.New(&logging.Config{Level: logLevel, ServiceName: "invsim-cli", Output: os.Stderr})

	service := appservices.NewSimulationService(nil, runRepo, events.NewInMemoryEventStore(), nil, logger)

	startTime := time.Now()
	run, err := service.RunSimulation(ctx, seriesFile, series, policy)
	if err != nil {
		return fmt.Errorf("error running simulation: %w", err)
	}
	simulationTime := time.Since(startTime)

	outputConfig := output.Config{
		Format:         c.config.Format,
		OutputDir:      c.config.OutputDir,
		ReportPath:     c.config.ReportPath,
		Verbose:        c.config.Verbose,
		SimulationTime: simulationTime,
	}

	if err := output.Generate(run, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// resolveScenario determines the series file and policy, either from a
// scenario in a config file or from individual flags.
func (c *SimulateCommand) resolveScenario() (string, entities.Policy, error) {
	if c.config.ConfigFile != "" {
		cfg, err := configfile.Load(c.config.ConfigFile)
		if err != nil {
			return "", entities.Policy{}, err
		}
		if c.config.Scenario == "" {
			return "", entities.Policy{}, fmt.Errorf("-scenario is required with -config")
		}
		scenario, err := cfg.Scenario(c.config.Scenario)
		if err != nil {
			return "", entities.Policy{}, err
		}
		return scenario.SeriesFile, scenario.Policy.ToPolicy(), nil
	}

	if c.config.SeriesFile == "" {
		return "", entities.Policy{}, fmt.Errorf("must specify -series or -config with -scenario")
	}

	policy := entities.Policy{
		LeadTime:                c.config.LeadTime,
		ReviewPeriod:            c.config.ReviewPeriod,
		SafetyFactor:            c.config.SafetyFactor,
		InitialInventory:        c.config.InitialInventory,
		UseRollingSS:            c.config.UseRollingSS,
		RollingWindow:           c.config.RollingWindow,
		IncludeReviewPeriodInSS: c.config.IncludeReviewPeriodInSS,
	}
	return c.config.SeriesFile, policy, nil
}

// showHelp displays the help message
func (c *SimulateCommand) showHelp() {
	fmt.Printf(`Inventory Simulator CLI - Forecast-Driven Periodic-Review Simulation

USAGE:
    invsim -series <file> [policy flags]      # Simulate one series
    invsim -config <file> -scenario <name>    # Run a named scenario

OPTIONS:
    -series <file>        Path to series CSV file (period,demand,forecast)
    -config <file>        Path to YAML scenario configuration
    -scenario <name>      Scenario name within the config file
    -db <file>            SQLite database for run persistence (optional)
    -lead-time <n>        Periods between ordering and receiving (default: 1)
    -review-period <n>    Ordering cadence in periods (default: 1)
    -safety-factor <z>    Service-level z-score (default: 1.645)
    -initial <qty>        Initial on-hand inventory (default: 0)
    -rolling-ss           Recalculate safety stock on a rolling window
    -rolling-window <n>   Rolling window size (default: 2*review-period)
    -ss-include-review    Include review period in the safety stock horizon
                          (default: true; disable with -ss-include-review=false)
    -output <dir>         Output directory for results (optional)
    -report <file>        HTML report path (format html)
    -format <fmt>         Output format: text, json, csv, html (default: text)
    -verbose              Enable verbose output
    -help                 Show this help message

SERIES CSV FORMAT:
    period,demand,forecast
    2025-01,100,95
    2025-02,110,105
    2025-03,,108            # empty demand = projected period

EXAMPLES:
    # Simulate with a weekly review cycle and two-period lead time
    invsim -series demand.csv -lead-time 2 -review-period 1 -verbose

    # Rolling safety stock, persisted to SQLite
    invsim -series demand.csv -review-period 4 -rolling-ss -db runs.db

    # Run a checked-in scenario and render the HTML report
    invsim -config invsim.yaml -scenario baseline -format html -report out/report.html
`)
}
