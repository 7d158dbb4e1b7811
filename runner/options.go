package runner

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/epigrid/logging"
	"github.com/katalvlaran/epigrid/metrics"
	"github.com/katalvlaran/epigrid/report"
	"github.com/katalvlaran/epigrid/store"
)

// Output selects the artifacts exported from the last run.
type Output struct {
	// Dir receives snapshots, the chart and the animation.
	Dir string
	// Weeks lists the generations after which a snapshot is taken.
	Weeks []int
	// Namer renders snapshot file names; nil uses report.DefaultNameTemplate.
	Namer *report.Namer
	// Scale is the pixel side of one cell.
	Scale int
	// Caption draws week, deaths and scenario under each snapshot.
	Caption bool
	// Chart writes the state curves as PNG.
	Chart bool
	// Animation writes the snapshots as a GIF.
	Animation bool
}

// Option customizes a Runner. Option constructors panic on nil arguments.
type Option func(*Runner)

// WithLogger sets the operational logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("runner: WithLogger(nil)")
	}
	return func(r *Runner) { r.logger = l }
}

// WithConsole writes per-generation and summary lines to c. Panics on nil.
func WithConsole(c *report.Console) Option {
	if c == nil {
		panic("runner: WithConsole(nil)")
	}
	return func(r *Runner) { r.console = c }
}

// WithPopulation dumps every cell's state after each generation to w.
// Panics on nil.
func WithPopulation(w io.Writer) Option {
	if w == nil {
		panic("runner: WithPopulation(nil)")
	}
	return func(r *Runner) { r.population = w }
}

// WithMetrics records every generation and run in m. Panics on nil.
func WithMetrics(m *metrics.Registry) Option {
	if m == nil {
		panic("runner: WithMetrics(nil)")
	}
	return func(r *Runner) { r.metrics = m }
}

// WithMetricsTextfile rewrites path with the metrics after every run.
// Requires WithMetrics.
func WithMetricsTextfile(path string) Option {
	return func(r *Runner) { r.textfile = path }
}

// WithStore persists every run and its per-generation counts. Panics on nil.
func WithStore(s *store.Store) Option {
	if s == nil {
		panic("runner: WithStore(nil)")
	}
	return func(r *Runner) { r.store = s }
}

// WithOutput enables the file artifacts of the last run.
func WithOutput(o Output) Option {
	return func(r *Runner) {
		o.Weeks = append([]int(nil), o.Weeks...)
		r.output = &o
	}
}

func defaultLogger() *slog.Logger { return logging.Discard() }
