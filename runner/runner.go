package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/epigrid/disease"
	"github.com/katalvlaran/epigrid/engine"
	"github.com/katalvlaran/epigrid/metrics"
	"github.com/katalvlaran/epigrid/report"
	"github.com/katalvlaran/epigrid/store"
)

// ErrInvalidParams indicates a parameter that cannot describe a batch.
var ErrInvalidParams = errors.New("runner: invalid parameters")

// Params describes a batch of runs.
type Params struct {
	Size        int
	Generations int
	Runs        int
	// Seed seeds run i with Seed+i; zero picks a time-based base seed.
	Seed int64
}

// Summary is the outcome of a batch.
type Summary struct {
	Scenario   disease.Scenario
	RunIDs     []string
	Seeds      []int64
	Deaths     []int
	LastDeaths int
	MeanDeaths float64
	// Files lists every artifact written, in order.
	Files []string
}

// Runner executes batches of one transition model.
type Runner struct {
	model      *disease.TransitionModel
	params     Params
	logger     *slog.Logger
	console    *report.Console
	population io.Writer
	metrics    *metrics.Registry
	textfile   string
	store      *store.Store
	output     *Output
}

// New validates p and returns a Runner for model.
func New(model *disease.TransitionModel, p Params, opts ...Option) (*Runner, error) {
	if model == nil {
		return nil, engine.ErrNilModel
	}
	switch {
	case p.Size <= 0:
		return nil, fmt.Errorf("runner.New: size %d: %w", p.Size, ErrInvalidParams)
	case p.Generations < 0:
		return nil, fmt.Errorf("runner.New: generations %d: %w", p.Generations, ErrInvalidParams)
	case p.Runs <= 0:
		return nil, fmt.Errorf("runner.New: runs %d: %w", p.Runs, ErrInvalidParams)
	}

	r := &Runner{model: model, params: p, logger: defaultLogger()}
	for _, opt := range opts {
		opt(r)
	}
	if r.textfile != "" && r.metrics == nil {
		return nil, fmt.Errorf("runner.New: metrics textfile without a registry: %w", ErrInvalidParams)
	}
	if r.output != nil && r.output.Namer == nil {
		namer, err := report.NewNamer("")
		if err != nil {
			return nil, err
		}
		r.output.Namer = namer
	}
	return r, nil
}

// Run executes every run of the batch and returns the summary. On error the
// summary holds the runs completed so far.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	sum := Summary{Scenario: r.model.Scenario()}
	base := r.params.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	total := 0
	for i := 0; i < r.params.Runs; i++ {
		seed := base + int64(i)
		last := i == r.params.Runs-1

		res, err := r.runOnce(ctx, seed, last)
		sum.Files = append(sum.Files, res.files...)
		if err != nil {
			return sum, fmt.Errorf("run %d: %w", i+1, err)
		}

		total += res.deaths
		sum.RunIDs = append(sum.RunIDs, res.id)
		sum.Seeds = append(sum.Seeds, seed)
		sum.Deaths = append(sum.Deaths, res.deaths)
		sum.LastDeaths = res.deaths
	}
	sum.MeanDeaths = float64(total) / float64(r.params.Runs)

	if r.console != nil {
		if err := r.console.Summary(sum.Scenario, sum.LastDeaths, sum.MeanDeaths); err != nil {
			return sum, fmt.Errorf("writing summary: %w", err)
		}
	}
	r.logger.Info("batch finished",
		"scenario", int(sum.Scenario), "runs", r.params.Runs, "mean_deaths", sum.MeanDeaths)
	return sum, nil
}

type runResult struct {
	id     string
	deaths int
	files  []string
}

func (r *Runner) runOnce(ctx context.Context, seed int64, export bool) (runResult, error) {
	res := runResult{id: uuid.NewString()}
	scenario := strconv.Itoa(int(r.model.Scenario()))

	e, err := engine.New(r.params.Size, r.model, engine.WithSeed(seed), engine.WithLogger(r.logger))
	if err != nil {
		return res, err
	}
	r.logger.Info("run started", "id", res.id, "scenario", scenario, "size", r.params.Size, "seed", seed)

	if r.store != nil {
		if err := r.store.SaveRun(ctx, r.storeRun(res.id, seed, 0)); err != nil {
			return res, err
		}
	}

	var (
		out     *Output
		history []disease.Counts
		anim    *report.Animation
	)
	if export {
		out = r.output
	}
	if out != nil {
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return res, fmt.Errorf("creating output directory: %w", err)
		}
		if out.Animation {
			anim = report.NewAnimation(50)
		}
	}

	if r.console != nil {
		if err := r.console.Header(); err != nil {
			return res, fmt.Errorf("writing header: %w", err)
		}
	}
	if err := r.record(ctx, res.id, e, e.Snapshot()); err != nil {
		return res, err
	}
	history = append(history, e.CountsByState())

	for g := 0; g < r.params.Generations; g++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		start := time.Now()
		e.Step()
		dur := time.Since(start)

		snap := e.Snapshot()
		if r.metrics != nil {
			r.metrics.ObserveGeneration(scenario, snap.Generation, snap.Counts, dur)
		}
		if err := r.record(ctx, res.id, e, snap); err != nil {
			return res, err
		}
		history = append(history, snap.Counts)

		if out != nil && slices.Contains(out.Weeks, snap.Generation) {
			path, err := r.exportSnapshot(e, out, anim)
			if err != nil {
				return res, err
			}
			res.files = append(res.files, path)
		}
	}

	res.deaths = e.DeathCount()
	if r.store != nil {
		if err := r.store.SaveRun(ctx, r.storeRun(res.id, seed, res.deaths)); err != nil {
			return res, err
		}
	}
	if r.metrics != nil {
		r.metrics.ObserveRun(scenario, res.deaths)
		if r.textfile != "" {
			if err := r.metrics.WriteTextfile(r.textfile); err != nil {
				return res, err
			}
		}
	}

	if out != nil {
		files, err := r.exportBatchArtifacts(out, history, anim)
		res.files = append(res.files, files...)
		if err != nil {
			return res, err
		}
	}

	r.logger.Info("run finished", "id", res.id, "seed", seed, "deaths", res.deaths)
	return res, nil
}

func (r *Runner) storeRun(id string, seed int64, deaths int) store.Run {
	return store.Run{
		ID:          id,
		Scenario:    r.model.Scenario(),
		Size:        r.params.Size,
		Generations: r.params.Generations,
		Seed:        seed,
		Deaths:      deaths,
	}
}

// record writes one generation's counts to the console, the population dump
// and the store.
func (r *Runner) record(ctx context.Context, runID string, e *engine.Engine, snap engine.Snapshot) error {
	if r.console != nil {
		if err := r.console.Counts(snap.Counts); err != nil {
			return fmt.Errorf("writing counts: %w", err)
		}
	}
	if r.population != nil {
		if err := report.WritePopulation(r.population, e.States()); err != nil {
			return fmt.Errorf("writing population: %w", err)
		}
	}
	if r.store != nil {
		if err := r.store.AppendCounts(ctx, runID, snap.Generation, snap.Counts); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) exportSnapshot(e *engine.Engine, out *Output, anim *report.Animation) (string, error) {
	data := report.NameData{
		Week:       e.Generation(),
		Generation: e.Generation() - 1,
		Deaths:     e.DeathCount(),
		Scenario:   r.model.Scenario(),
	}
	name, err := out.Namer.Name(data)
	if err != nil {
		return "", err
	}

	opts := report.ImageOptions{Scale: out.Scale}
	if out.Caption {
		opts.Caption = report.Caption(data)
	}
	img := report.Render(e.States(), opts)

	path := filepath.Join(out.Dir, name)
	if err := report.SavePNG(path, img); err != nil {
		return "", err
	}
	if anim != nil {
		anim.Add(img)
	}
	if r.console != nil {
		if err := r.console.Snapshot(name); err != nil {
			return "", fmt.Errorf("announcing snapshot: %w", err)
		}
	}
	r.logger.Debug("snapshot written", "path", path, "week", data.Week, "deaths", data.Deaths)
	return path, nil
}

func (r *Runner) exportBatchArtifacts(out *Output, history []disease.Counts, anim *report.Animation) ([]string, error) {
	var files []string
	prefix := fmt.Sprintf("epigrid-scenario%d", r.model.Scenario())

	if out.Chart && len(history) >= 2 {
		var buf bytes.Buffer
		err := report.RenderCurves(&buf, history, report.ChartOptions{
			Title: fmt.Sprintf("scenario %d: %s", r.model.Scenario(), r.model.Name()),
		})
		if err != nil {
			return files, err
		}
		path := filepath.Join(out.Dir, prefix+"-curves.png")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return files, fmt.Errorf("writing chart: %w", err)
		}
		files = append(files, path)
	}

	if anim != nil && anim.Len() > 0 {
		path := filepath.Join(out.Dir, prefix+".gif")
		if err := anim.Save(path); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}
