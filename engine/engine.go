// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/epigrid/disease"
	"github.com/katalvlaran/epigrid/grid"
	"github.com/katalvlaran/epigrid/logging"
)

// ErrNilModel indicates that New was called without a transition model.
var ErrNilModel = errors.New("engine: transition model is nil")

// Snapshot summarises one committed generation.
type Snapshot struct {
	Generation int
	Counts     disease.Counts
	Deaths     int
}

// Observer receives a Snapshot after every committed generation.
type Observer func(Snapshot)

// Engine runs the cellular automaton. See the package documentation for the
// exact step algorithm.
type Engine struct {
	grid       *grid.Grid
	model      *disease.TransitionModel
	rng        *rand.Rand
	generation int
	logger     *slog.Logger
	observers  []Observer
}

// New builds an engine over a fresh size×size grid seeded with one Sick cell
// at its center.
//
// Errors:
//   - ErrNilModel if model is nil.
//   - grid.ErrInvalidSize if size ≤ 0.
func New(size int, model *disease.TransitionModel, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	g, err := grid.New(size)
	if err != nil {
		return nil, fmt.Errorf("engine.New: %w", err)
	}
	cfg := newConfig(opts)

	return &Engine{
		grid:      g,
		model:     model,
		rng:       cfg.rng,
		logger:    cfg.logger,
		observers: cfg.observers,
	}, nil
}

// Step advances the simulation by exactly one generation.
// Complexity: O(N²·8).
func (e *Engine) Step() {
	n := e.grid.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := e.grid.Current(i, j)
			if s.Infectious() {
				e.interact(i, j)
			}
			// self-transition always samples the current-buffer state
			e.grid.SetNext(i, j, e.model.Sample(s, e.rng.Float64()))
		}
	}
	e.grid.Commit()
	e.generation++

	if len(e.observers) == 0 && !e.logger.Enabled(context.Background(), logging.LevelTrace) {
		return
	}
	snap := e.snapshot()
	logging.Trace(e.logger, "generation committed",
		"generation", snap.Generation,
		"deaths", snap.Deaths,
		"sick", snap.Counts.Get(disease.Sick),
	)
	for _, fn := range e.observers {
		fn(snap)
	}
}

// interact performs contagion from the infectious cell at (i,j) against its
// Moore neighbours, reading and writing the next buffer.
func (e *Engine) interact(i, j int) {
	avoid := e.model.SocialDistanceEffect()
	contagion := e.model.ContagionProbability()
	for nb := range e.grid.NeighborsOf(i, j) {
		if e.rng.Float64() < avoid {
			continue
		}
		if e.grid.Next(nb.Row, nb.Col) != disease.Healthy {
			continue
		}
		// a zero probability never infects, even on an exact 0 draw
		if u := e.rng.Float64(); contagion > 0 && u <= contagion {
			e.grid.SetNext(nb.Row, nb.Col, disease.Sick)
		}
	}
}

// Run performs n steps, checking ctx before each one. A step in progress is
// never interrupted. Returns ctx.Err() if cancelled early.
func (e *Engine) Run(ctx context.Context, n int) error {
	for k := 0; k < n; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Step()
	}
	return nil
}

func (e *Engine) snapshot() Snapshot {
	return Snapshot{
		Generation: e.generation,
		Counts:     e.grid.CountsByState(),
		Deaths:     e.grid.DeathCount(),
	}
}

// Generation returns the number of completed steps.
func (e *Engine) Generation() int { return e.generation }

// Size returns the grid side length.
func (e *Engine) Size() int { return e.grid.Size() }

// Model returns the transition model.
func (e *Engine) Model() *disease.TransitionModel { return e.model }

// CountsByState tallies the current generation per state.
func (e *Engine) CountsByState() disease.Counts { return e.grid.CountsByState() }

// DeathCount returns the number of Dead cells in the current generation.
func (e *Engine) DeathCount() int { return e.grid.DeathCount() }

// StateAt returns the current state of (row,col) or grid.ErrOutOfRange.
func (e *Engine) StateAt(row, col int) (disease.State, error) { return e.grid.At(row, col) }

// Snapshot returns a Snapshot of the current generation.
func (e *Engine) Snapshot() Snapshot { return e.snapshot() }

// States returns a deep copy of the current buffer, indexed [row][col].
func (e *Engine) States() [][]disease.State { return e.grid.Snapshot() }

// Outbreaks returns the 8-connected clusters of infectious cells.
func (e *Engine) Outbreaks() [][]grid.Coord { return e.grid.Clusters(disease.State.Infectious) }
