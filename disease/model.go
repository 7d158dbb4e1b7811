// SPDX-License-Identifier: MIT

package disease

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/epigrid/matrix"
)

// Scenario identifies a transition model.
type Scenario int

// RowTolerance is the allowed deviation of a transition row sum from 1.
const RowTolerance = matrix.DefaultEpsilon

// TransitionModel bundles a row-stochastic 7×7 transition table with the
// contagion probability and the social-distance effect of one scenario.
// A TransitionModel is immutable; every accessor returns a copy.
type TransitionModel struct {
	scenario       Scenario
	name           string
	table          *matrix.Dense
	rows           [NumStates][NumStates]float64
	contagion      float64
	socialDistance float64
}

// NewTransitionModel validates its inputs and returns an immutable model.
//
// Errors:
//   - matrix.ErrDimensionMismatch if rows is jagged, not square or not 7×7.
//   - ErrMalformedTransitionRow together with matrix.ErrNaNInf if any entry
//     is NaN or ±Inf.
//   - ErrMalformedTransitionRow (wrapping the offending row) if a row has a
//     negative entry or does not sum to 1 within RowTolerance.
//   - ErrInvalidProbability if contagion or socialDistance is outside [0,1].
func NewTransitionModel(id Scenario, name string, rows [][]float64, contagion, socialDistance float64) (*TransitionModel, error) {
	table, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("NewTransitionModel(%d): %w", id, err)
	}
	if err = matrix.ValidateSquare(table); err != nil {
		return nil, fmt.Errorf("NewTransitionModel(%d): table is %dx%d: %w",
			id, table.Rows(), table.Cols(), err)
	}
	if table.Rows() != NumStates {
		return nil, fmt.Errorf("NewTransitionModel(%d): table is %dx%d, want %dx%d: %w",
			id, table.Rows(), table.Cols(), NumStates, NumStates, matrix.ErrDimensionMismatch)
	}
	if err = matrix.ValidateFinite(table); err != nil {
		return nil, fmt.Errorf("NewTransitionModel(%d): %w: %w", id, ErrMalformedTransitionRow, err)
	}
	if err = matrix.ValidateRowStochastic(table, RowTolerance); err != nil {
		var rowErr *matrix.RowError
		if errors.As(err, &rowErr) {
			return nil, fmt.Errorf("NewTransitionModel(%d): %s row: %w (%v)",
				id, State(rowErr.Row), ErrMalformedTransitionRow, rowErr.Err)
		}
		return nil, fmt.Errorf("NewTransitionModel(%d): %w", id, err)
	}
	if err = checkProbability("contagion", contagion); err != nil {
		return nil, fmt.Errorf("NewTransitionModel(%d): %w", id, err)
	}
	if err = checkProbability("social distance", socialDistance); err != nil {
		return nil, fmt.Errorf("NewTransitionModel(%d): %w", id, err)
	}

	m := &TransitionModel{
		scenario:       id,
		name:           name,
		table:          table,
		contagion:      contagion,
		socialDistance: socialDistance,
	}
	for i := range NumStates {
		row, err := table.Row(i)
		if err != nil {
			return nil, fmt.Errorf("NewTransitionModel(%d): %w", id, err)
		}
		copy(m.rows[i][:], row)
	}

	return m, nil
}

func checkProbability(what string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%s %v: %w", what, p, ErrInvalidProbability)
	}
	return nil
}

// Scenario returns the scenario id.
func (m *TransitionModel) Scenario() Scenario { return m.scenario }

// Name returns the human-readable scenario name.
func (m *TransitionModel) Name() string { return m.name }

// ContagionProbability is the chance that a contacted Healthy neighbour of a
// Sick or Dead individual becomes Sick.
func (m *TransitionModel) ContagionProbability() float64 { return m.contagion }

// SocialDistanceEffect is the chance that any single neighbour interaction is skipped.
func (m *TransitionModel) SocialDistanceEffect() float64 { return m.socialDistance }

// Row returns a copy of the transition row for state s.
func (m *TransitionModel) Row(s State) []float64 {
	out := make([]float64, NumStates)
	copy(out, m.rows[s.Ordinal()][:])
	return out
}

// Probability returns P(from → to) for a single generation.
func (m *TransitionModel) Probability(from, to State) float64 {
	return m.rows[from.Ordinal()][to.Ordinal()]
}

// Matrix returns a copy of the full transition table.
func (m *TransitionModel) Matrix() *matrix.Dense {
	return m.table.Clone().(*matrix.Dense)
}

// Absorbing reports whether s routes all probability back to itself.
func (m *TransitionModel) Absorbing(s State) bool {
	return m.rows[s.Ordinal()][s.Ordinal()] == 1
}

// Sample picks the successor of `from` for a uniform draw u in [0,1):
// the first state whose cumulative row probability is ≥ u.
// If rounding leaves u above the final cumulative sum, the last state with
// non-zero probability is returned.
func (m *TransitionModel) Sample(from State, u float64) State {
	row := &m.rows[from.Ordinal()]
	cumulative := 0.0
	last := from
	for i, p := range row {
		if p > 0 {
			last = State(i)
		}
		cumulative += p
		if u <= cumulative && p > 0 {
			return State(i)
		}
	}
	return last
}

// WithContagion returns a copy of m with a different contagion probability.
func (m *TransitionModel) WithContagion(p float64) (*TransitionModel, error) {
	return NewTransitionModel(m.scenario, m.name, m.table.ToSlices(), p, m.socialDistance)
}

// WithSocialDistance returns a copy of m with a different social-distance effect.
func (m *TransitionModel) WithSocialDistance(p float64) (*TransitionModel, error) {
	return NewTransitionModel(m.scenario, m.name, m.table.ToSlices(), m.contagion, p)
}

// String implements fmt.Stringer.
func (m *TransitionModel) String() string {
	return fmt.Sprintf("TransitionModel{Scenario:%d, Name:%q, Contagion:%g, SocialDistance:%g}",
		m.scenario, m.name, m.contagion, m.socialDistance)
}
