// Package config loads scenario configuration from YAML files. A scenario
// names the input series file, the review policy and the output options so
// a simulation can be re-run from a single checked-in file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/planhorizon/invsim/pkg/domain/entities"
)

// PolicyConfig mirrors entities.Policy in YAML form. The include flag is a
// pointer so an omitted key defaults to true while an explicit false sticks.
type PolicyConfig struct {
	LeadTime                int     `yaml:"lead_time"`
	ReviewPeriod            int     `yaml:"review_period"`
	SafetyFactor            float64 `yaml:"safety_factor"`
	InitialInventory        float64 `yaml:"initial_inventory"`
	UseRollingSS            bool    `yaml:"use_rolling_ss"`
	RollingWindow           int     `yaml:"rolling_window"`
	IncludeReviewPeriodInSS *bool   `yaml:"include_review_period_in_ss"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	CSVPath    string `yaml:"csv_path"`
	ReportPath string `yaml:"report_path"`
	Format     string `yaml:"format"`
}

// Scenario is one named simulation setup.
type Scenario struct {
	Name       string       `yaml:"name"`
	SeriesFile string       `yaml:"series_file"`
	Policy     PolicyConfig `yaml:"policy"`
	Output     OutputConfig `yaml:"output"`
}

// Config is the top-level configuration file.
type Config struct {
	Database  string     `yaml:"database"`
	LogLevel  string     `yaml:"log_level"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file %s: %v", entities.ErrMalformedInput, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool)
	for i, scenario := range c.Scenarios {
		if scenario.Name == "" {
			return fmt.Errorf("%w: scenario %d has no name", entities.ErrMalformedInput, i)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("%w: duplicate scenario name %q", entities.ErrMalformedInput, scenario.Name)
		}
		seen[scenario.Name] = true

		if scenario.SeriesFile == "" {
			return fmt.Errorf("%w: scenario %q has no series_file", entities.ErrMalformedInput, scenario.Name)
		}
		if err := scenario.Policy.ToPolicy().Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
	}
	return nil
}

// Scenario returns the scenario with the given name.
func (c *Config) Scenario(name string) (*Scenario, error) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario not found: %s", name)
}

// ToPolicy converts the YAML form to the domain policy.
func (p PolicyConfig) ToPolicy() entities.Policy {
	includeReview := true
	if p.IncludeReviewPeriodInSS != nil {
		includeReview = *p.IncludeReviewPeriodInSS
	}
	return entities.Policy{
		LeadTime:                p.LeadTime,
		ReviewPeriod:            p.ReviewPeriod,
		SafetyFactor:            p.SafetyFactor,
		InitialInventory:        p.InitialInventory,
		UseRollingSS:            p.UseRollingSS,
		RollingWindow:           p.RollingWindow,
		IncludeReviewPeriodInSS: includeReview,
	}
}
