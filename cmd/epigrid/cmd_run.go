package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/epigrid/config"
	"github.com/katalvlaran/epigrid/disease"
	"github.com/katalvlaran/epigrid/logging"
	"github.com/katalvlaran/epigrid/metrics"
	"github.com/katalvlaran/epigrid/report"
	"github.com/katalvlaran/epigrid/runner"
	"github.com/katalvlaran/epigrid/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch of simulations and report the mean deaths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyRunFlags(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			model, err := resolveModel(cfg)
			if err != nil {
				return err
			}

			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			out := cmd.OutOrStdout()

			opts := []runner.Option{
				runner.WithLogger(logger),
				runner.WithConsole(report.NewConsole(out, cfg.Simulation.Verbose)),
				runner.WithMetrics(metrics.NewRegistry()),
			}
			if cfg.Metrics.Textfile != "" {
				opts = append(opts, runner.WithMetricsTextfile(cfg.Metrics.Textfile))
			}
			if cfg.Output.Population {
				opts = append(opts, runner.WithPopulation(out))
			}
			if cfg.Output.Snapshots || cfg.Output.Chart || cfg.Output.Animation {
				namer, err := report.NewNamer(cfg.Output.NameTemplate)
				if err != nil {
					return err
				}
				o := runner.Output{
					Dir:       cfg.Output.Dir,
					Namer:     namer,
					Scale:     cfg.Output.Scale,
					Caption:   cfg.Output.Caption,
					Chart:     cfg.Output.Chart,
					Animation: cfg.Output.Animation,
				}
				if cfg.Output.Snapshots {
					o.Weeks = cfg.Output.Weeks
				}
				opts = append(opts, runner.WithOutput(o))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if cfg.Store.Enabled {
				s, err := store.Open(ctx, cfg.Store.Path)
				if err != nil {
					return err
				}
				defer s.Close()
				opts = append(opts, runner.WithStore(s))
			}

			r, err := runner.New(model, runner.Params{
				Size:        cfg.Simulation.Size,
				Generations: cfg.Simulation.Generations,
				Runs:        cfg.Simulation.Runs,
				Seed:        cfg.Simulation.Seed,
			}, opts...)
			if err != nil {
				return err
			}

			_, err = r.Run(ctx)
			return err
		},
	}

	cmd.Flags().Int("size", 0, "Side of the square population grid")
	cmd.Flags().Int("scenario", 0, "Scenario id (see 'epigrid scenarios')")
	cmd.Flags().Int("generations", 0, "Generations (weeks) per run")
	cmd.Flags().Int("runs", 0, "Number of runs to average")
	cmd.Flags().Int64("seed", 0, "Base seed; run i uses seed+i (0 = time based)")
	cmd.Flags().BoolP("verbose", "v", false, "Print per-generation counts")
	cmd.Flags().Float64("social-distance", 0, "Override the scenario's social distance effect")
	cmd.Flags().Float64("contagion", 0, "Override the scenario's contagion probability")
	cmd.Flags().String("out", "", "Output directory for snapshots, chart and animation")
	cmd.Flags().Bool("no-snapshots", false, "Disable PNG snapshots")
	cmd.Flags().IntSlice("weeks", nil, "Weeks after which a snapshot is taken")
	cmd.Flags().Int("scale", 0, "Pixel side of one cell in snapshots")
	cmd.Flags().Bool("caption", false, "Caption snapshots with week, deaths and scenario")
	cmd.Flags().Bool("chart", false, "Write the state curves of the last run")
	cmd.Flags().Bool("animation", false, "Write the snapshots of the last run as a GIF")
	cmd.Flags().Bool("population", false, "Dump every cell's state after each generation")
	cmd.Flags().String("store", "", "Persist runs to this SQLite database")
	cmd.Flags().String("metrics-textfile", "", "Write Prometheus metrics to this file after each run")

	return cmd
}

// loadConfig loads the --config file (if any) and applies --log-level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	return cfg, nil
}

// applyRunFlags overrides cfg with every flag set on the command line.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	ints := map[string]*int{
		"size":        &cfg.Simulation.Size,
		"scenario":    &cfg.Simulation.Scenario,
		"generations": &cfg.Simulation.Generations,
		"runs":        &cfg.Simulation.Runs,
		"scale":       &cfg.Output.Scale,
	}
	for name, dst := range ints {
		if f.Changed(name) {
			v, err := f.GetInt(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}
	bools := map[string]*bool{
		"verbose":    &cfg.Simulation.Verbose,
		"caption":    &cfg.Output.Caption,
		"chart":      &cfg.Output.Chart,
		"animation":  &cfg.Output.Animation,
		"population": &cfg.Output.Population,
	}
	for name, dst := range bools {
		if f.Changed(name) {
			*dst, _ = f.GetBool(name)
		}
	}

	if f.Changed("seed") {
		cfg.Simulation.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("social-distance") {
		v, _ := f.GetFloat64("social-distance")
		cfg.Simulation.SocialDistance = &v
	}
	if f.Changed("contagion") {
		v, _ := f.GetFloat64("contagion")
		cfg.Simulation.Contagion = &v
	}
	if f.Changed("out") {
		cfg.Output.Dir, _ = f.GetString("out")
	}
	if f.Changed("no-snapshots") {
		off, _ := f.GetBool("no-snapshots")
		cfg.Output.Snapshots = !off
	}
	if f.Changed("weeks") {
		cfg.Output.Weeks, _ = f.GetIntSlice("weeks")
	}
	if f.Changed("store") {
		cfg.Store.Path, _ = f.GetString("store")
		cfg.Store.Enabled = true
	}
	if f.Changed("metrics-textfile") {
		cfg.Metrics.Textfile, _ = f.GetString("metrics-textfile")
	}
	return nil
}

// resolveModel looks up the configured scenario and applies the knob
// overrides.
func resolveModel(cfg *config.Config) (*disease.TransitionModel, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	model, err := reg.Lookup(disease.Scenario(cfg.Simulation.Scenario))
	if err != nil {
		return nil, err
	}
	if p := cfg.Simulation.SocialDistance; p != nil {
		if model, err = model.WithSocialDistance(*p); err != nil {
			return nil, err
		}
	}
	if p := cfg.Simulation.Contagion; p != nil {
		if model, err = model.WithContagion(*p); err != nil {
			return nil, err
		}
	}
	return model, nil
}

