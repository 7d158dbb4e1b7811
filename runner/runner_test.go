package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/epigrid/disease"
	"github.com/katalvlaran/epigrid/engine"
	"github.com/katalvlaran/epigrid/metrics"
	"github.com/katalvlaran/epigrid/report"
	"github.com/katalvlaran/epigrid/runner"
	"github.com/katalvlaran/epigrid/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// lethalModel kills a Sick cell in one step and never spreads.
func lethalModel(t *testing.T) *disease.TransitionModel {
	t.Helper()
	rows := make([][]float64, disease.NumStates)
	for i := range rows {
		rows[i] = make([]float64, disease.NumStates)
		rows[i][i] = 1
	}
	rows[disease.Sick][disease.Sick] = 0
	rows[disease.Sick][disease.Dead] = 1
	m, err := disease.NewTransitionModel(9, "lethal", rows, 0, 0)
	require.NoError(t, err)
	return m
}

func TestNew_Validation(t *testing.T) {
	m := lethalModel(t)

	_, err := runner.New(nil, runner.Params{Size: 3, Runs: 1})
	require.ErrorIs(t, err, engine.ErrNilModel)

	for _, p := range []runner.Params{
		{Size: 0, Runs: 1},
		{Size: 3, Runs: 0},
		{Size: 3, Runs: 1, Generations: -1},
	} {
		_, err := runner.New(m, p)
		require.ErrorIs(t, err, runner.ErrInvalidParams, "%+v", p)
	}

	_, err = runner.New(m, runner.Params{Size: 3, Runs: 1}, runner.WithMetricsTextfile("x.prom"))
	require.ErrorIs(t, err, runner.ErrInvalidParams)

	require.Panics(t, func() { runner.WithLogger(nil) })
	require.Panics(t, func() { runner.WithStore(nil) })
}

func TestRun_MeanDeaths(t *testing.T) {
	r, err := runner.New(lethalModel(t), runner.Params{Size: 5, Generations: 2, Runs: 3, Seed: 100})
	require.NoError(t, err)

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, disease.Scenario(9), sum.Scenario)
	require.Equal(t, []int{1, 1, 1}, sum.Deaths)
	require.Equal(t, []int64{100, 101, 102}, sum.Seeds)
	require.Equal(t, 1, sum.LastDeaths)
	require.Equal(t, 1.0, sum.MeanDeaths)
	require.Len(t, sum.RunIDs, 3)
	require.NotEqual(t, sum.RunIDs[0], sum.RunIDs[1])

	// the accumulator is local to Run
	again, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1.0, again.MeanDeaths)
}

func TestRun_PresetIsReproducible(t *testing.T) {
	m, err := disease.Preset(disease.LowerContainment)
	require.NoError(t, err)

	run := func() runner.Summary {
		r, err := runner.New(m, runner.Params{Size: 15, Generations: 10, Runs: 2, Seed: 7})
		require.NoError(t, err)
		sum, err := r.Run(context.Background())
		require.NoError(t, err)
		return sum
	}
	a, b := run(), run()
	require.Equal(t, a.Deaths, b.Deaths)
	require.Equal(t, a.MeanDeaths, b.MeanDeaths)
}

func TestRun_ConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	r, err := runner.New(lethalModel(t), runner.Params{Size: 3, Generations: 3, Runs: 2, Seed: 1},
		runner.WithConsole(report.NewConsole(&buf, true)))
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	// per run: header plus one line before the first step and one per step
	require.Len(t, lines, 2*(1+4)+2)
	require.True(t, strings.HasPrefix(lines[0], "healthy\t"))
	require.Equal(t, "8\t0\t0\t0\t1\t0\t0", lines[1])
	require.Equal(t, "8\t0\t0\t0\t0\t0\t1", lines[2])
	require.Equal(t, "last week deaths: 1", lines[10])
	require.Equal(t, "scenario: 9 mean deaths: 1", lines[11])
}

func TestRun_PopulationDump(t *testing.T) {
	var buf bytes.Buffer
	r, err := runner.New(lethalModel(t), runner.Params{Size: 3, Generations: 1, Runs: 1, Seed: 1},
		runner.WithPopulation(&buf))
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, "0\t0\t0\n0\t4\t0\n0\t0\t0\n\n0\t0\t0\n0\t6\t0\n0\t0\t0\n\n", buf.String())
}

func TestRun_Output(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var buf bytes.Buffer
	r, err := runner.New(lethalModel(t), runner.Params{Size: 5, Generations: 3, Runs: 2, Seed: 1},
		runner.WithConsole(report.NewConsole(&buf, false)),
		runner.WithOutput(runner.Output{
			Dir:       dir,
			Weeks:     []int{1, 3, 24},
			Scale:     2,
			Caption:   true,
			Chart:     true,
			Animation: true,
		}))
	require.NoError(t, err)

	sum, err := r.Run(context.Background())
	require.NoError(t, err)

	// only the last run exports; week 24 is never reached
	require.Equal(t, []string{
		filepath.Join(dir, "gen-week1-deaths1-scenario9.png"),
		filepath.Join(dir, "gen-week3-deaths1-scenario9.png"),
		filepath.Join(dir, "epigrid-scenario9-curves.png"),
		filepath.Join(dir, "epigrid-scenario9.gif"),
	}, sum.Files)
	for _, f := range sum.Files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}
	require.Contains(t, buf.String(), "gen-week1-deaths1-scenario9.png\n")
}

func TestRun_Store(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	r, err := runner.New(lethalModel(t), runner.Params{Size: 3, Generations: 2, Runs: 2, Seed: 5},
		runner.WithStore(s))
	require.NoError(t, err)
	sum, err := r.Run(ctx)
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, run := range runs {
		require.Contains(t, sum.RunIDs, run.ID)
		require.Equal(t, 1, run.Deaths)
		require.Equal(t, 3, run.Size)
	}

	history, err := s.Counts(ctx, sum.RunIDs[0])
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, 1, history[0].Get(disease.Sick))
	require.Equal(t, 1, history[2].Get(disease.Dead))
}

func TestRun_Metrics(t *testing.T) {
	reg := metrics.NewRegistry()
	textfile := filepath.Join(t.TempDir(), "epigrid.prom")

	r, err := runner.New(lethalModel(t), runner.Params{Size: 3, Generations: 4, Runs: 2, Seed: 5},
		runner.WithMetrics(reg), runner.WithMetricsTextfile(textfile))
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2.0, testutil.ToFloat64(reg.RunsTotal.WithLabelValues("9")))
	require.Equal(t, 8.0, testutil.ToFloat64(reg.GenerationsTotal.WithLabelValues("9")))
	require.Equal(t, 1.0, testutil.ToFloat64(reg.Deaths))
	require.Equal(t, 4.0, testutil.ToFloat64(reg.Generation))

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	require.Contains(t, string(data), `epigrid_runs_total{scenario="9"} 2`)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := runner.New(lethalModel(t), runner.Params{Size: 3, Generations: 2, Runs: 2, Seed: 1})
	require.NoError(t, err)
	sum, err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, sum.Deaths)
}
