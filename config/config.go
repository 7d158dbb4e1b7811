// Package config provides unified configuration loading for epigrid.
// It supports loading from YAML files and EPIGRID_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/epigrid/disease"
)

// Config contains all epigrid configuration settings.
type Config struct {
	// Simulation holds the parameters of a batch of runs.
	Simulation SimulationConfig `yaml:"simulation"`

	// Output controls snapshots, charts and animations.
	Output OutputConfig `yaml:"output"`

	// Store configures SQLite persistence of runs.
	Store StoreConfig `yaml:"store"`

	// Metrics configures the Prometheus textfile export.
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging configures the operational logger.
	Logging LoggingConfig `yaml:"logging"`

	// Scenarios declares transition models in addition to the presets.
	Scenarios []ScenarioConfig `yaml:"scenarios" validate:"dive"`
}

// SimulationConfig sets up the grid and the run loop.
type SimulationConfig struct {
	// Size is the side of the square population grid.
	Size int `yaml:"size" validate:"min=1,max=4096"`

	// Scenario selects a registered transition model.
	Scenario int `yaml:"scenario" validate:"min=1"`

	// Generations is the number of steps per run.
	Generations int `yaml:"generations" validate:"min=0"`

	// Runs is the number of independent runs whose deaths are averaged.
	Runs int `yaml:"runs" validate:"min=1"`

	// Seed seeds run i with Seed+i. Zero means a time-based seed.
	Seed int64 `yaml:"seed"`

	// Verbose prints per-generation counts to stdout.
	Verbose bool `yaml:"verbose"`

	// SocialDistance overrides the scenario's social distance effect.
	SocialDistance *float64 `yaml:"social_distance,omitempty" validate:"omitempty,min=0,max=1"`

	// Contagion overrides the scenario's contagion probability.
	Contagion *float64 `yaml:"contagion,omitempty" validate:"omitempty,min=0,max=1"`
}

// OutputConfig controls the artifacts written next to a run.
type OutputConfig struct {
	// Dir receives every file written by a run.
	Dir string `yaml:"dir" validate:"required"`

	// Snapshots enables PNG snapshots at the listed weeks.
	Snapshots bool `yaml:"snapshots"`

	// Weeks lists the generations (1-based) after which a snapshot is taken.
	Weeks []int `yaml:"weeks" validate:"dive,min=1"`

	// NameTemplate is a text/template for snapshot file names.
	NameTemplate string `yaml:"name_template"`

	// Scale is the side in pixels of one cell.
	Scale int `yaml:"scale" validate:"min=1,max=64"`

	// Caption draws week, deaths and scenario under each snapshot.
	Caption bool `yaml:"caption"`

	// Chart writes a PNG of the state curves of the last run.
	Chart bool `yaml:"chart"`

	// Animation writes a GIF of the snapshots of the last run.
	Animation bool `yaml:"animation"`

	// Population dumps every cell's state ordinal after each generation.
	Population bool `yaml:"population"`
}

// StoreConfig configures run persistence.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	// Textfile, when set, receives the metrics after every run.
	Textfile string `yaml:"textfile"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
}

// ScenarioConfig declares a custom transition model.
type ScenarioConfig struct {
	ID             int         `yaml:"id" validate:"min=1"`
	Name           string      `yaml:"name" validate:"required"`
	Contagion      float64     `yaml:"contagion" validate:"min=0,max=1"`
	SocialDistance float64     `yaml:"social_distance" validate:"min=0,max=1"`
	Transitions    [][]float64 `yaml:"transitions" validate:"len=7,dive,len=7"`
}

// Model builds the transition model declared by s.
func (s ScenarioConfig) Model() (*disease.TransitionModel, error) {
	return disease.NewTransitionModel(disease.Scenario(s.ID), s.Name, s.Transitions, s.Contagion, s.SocialDistance)
}

// DefaultWeeks are the weeks snapshotted when none are configured.
var DefaultWeeks = []int{1, 2, 3, 4, 5, 24}

// Default returns a 255×255 grid under scenario 2 for 52 weeks, one run,
// snapshots after weeks 1-5 and 24.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Size:        255,
			Scenario:    int(disease.HigherContainment),
			Generations: 52,
			Runs:        1,
		},
		Output: OutputConfig{
			Dir:       ".",
			Snapshots: true,
			Weeks:     append([]int(nil), DefaultWeeks...),
			Scale:     1,
			Caption:   false,
		},
		Store: StoreConfig{
			Path: "epigrid.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration in order: defaults, then path if it names an
// existing file, then environment variable overrides. An empty path skips
// the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			fileCfg, err := LoadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("loading config file: %w", err)
			}
			cfg = fileCfg
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return nil, fmt.Errorf("checking config file: %w", statErr)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file on top of the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.Output.Dir = os.ExpandEnv(cfg.Output.Dir)
	cfg.Store.Path = os.ExpandEnv(cfg.Store.Path)
	return cfg, nil
}

// Validate checks struct constraints, rejects snapshot weeks that the run
// never reaches and then builds every custom scenario to check its
// transition table.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Output.Snapshots {
		for i, w := range c.Output.Weeks {
			if w > c.Simulation.Generations {
				return fmt.Errorf("Output.Weeks[%d]: week %d exceeds %d generations", i, w, c.Simulation.Generations)
			}
		}
	}

	seen := make(map[int]bool, len(c.Scenarios))
	for _, id := range disease.PresetIDs() {
		seen[int(id)] = true
	}
	for i, s := range c.Scenarios {
		if seen[s.ID] {
			return fmt.Errorf("Scenarios[%d]: %w: %d", i, disease.ErrDuplicateScenario, s.ID)
		}
		seen[s.ID] = true
		if _, err := s.Model(); err != nil {
			return fmt.Errorf("Scenarios[%d]: %w", i, err)
		}
	}
	if !seen[c.Simulation.Scenario] {
		return fmt.Errorf("Simulation.Scenario: %w: %d", disease.ErrInvalidScenario, c.Simulation.Scenario)
	}
	return nil
}

// Registry returns the preset registry extended with the custom scenarios.
func (c *Config) Registry() (*disease.Registry, error) {
	reg := disease.NewRegistry()
	for _, s := range c.Scenarios {
		m, err := s.Model()
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", s.ID, err)
		}
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", s.ID, err)
		}
	}
	return reg, nil
}

var validate = validator.New()

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Errorf("%s: field is required", field)
	case "min":
		return fmt.Errorf("%s: must be at least %s", field, e.Param())
	case "max":
		return fmt.Errorf("%s: must not exceed %s", field, e.Param())
	case "len":
		return fmt.Errorf("%s: must have length %s", field, e.Param())
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s]", field, e.Param())
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}

// applyEnvOverrides applies EPIGRID_* environment variables to cfg.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"EPIGRID_SIZE", &cfg.Simulation.Size},
		{"EPIGRID_SCENARIO", &cfg.Simulation.Scenario},
		{"EPIGRID_GENERATIONS", &cfg.Simulation.Generations},
		{"EPIGRID_RUNS", &cfg.Simulation.Runs},
	}
	for _, v := range ints {
		if s := os.Getenv(v.key); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%s: %w", v.key, err)
			}
			*v.dst = n
		}
	}

	if s := os.Getenv("EPIGRID_SEED"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("EPIGRID_SEED: %w", err)
		}
		cfg.Simulation.Seed = n
	}
	if s := os.Getenv("EPIGRID_SOCIAL_DISTANCE"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("EPIGRID_SOCIAL_DISTANCE: %w", err)
		}
		cfg.Simulation.SocialDistance = &f
	}
	if s := os.Getenv("EPIGRID_CONTAGION"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("EPIGRID_CONTAGION: %w", err)
		}
		cfg.Simulation.Contagion = &f
	}
	if s := os.Getenv("EPIGRID_VERBOSE"); s != "" {
		cfg.Simulation.Verbose = s == "true" || s == "1"
	}
	if s := os.Getenv("EPIGRID_OUTPUT_DIR"); s != "" {
		cfg.Output.Dir = s
	}
	if s := os.Getenv("EPIGRID_STORE_PATH"); s != "" {
		cfg.Store.Path = s
		cfg.Store.Enabled = true
	}
	if s := os.Getenv("EPIGRID_METRICS_TEXTFILE"); s != "" {
		cfg.Metrics.Textfile = s
	}
	if s := os.Getenv("EPIGRID_LOG_LEVEL"); s != "" {
		cfg.Logging.Level = s
	}
	return nil
}
