// SPDX-License-Identifier: MIT
package disease_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/epigrid/disease"
	"github.com/katalvlaran/epigrid/matrix"
	"github.com/stretchr/testify/require"
)

func identityRows() [][]float64 {
	rows := make([][]float64, disease.NumStates)
	for i := range rows {
		rows[i] = make([]float64, disease.NumStates)
		rows[i][i] = 1
	}
	return rows
}

func TestPresets_RowsSumToOne(t *testing.T) {
	for _, id := range disease.PresetIDs() {
		m, err := disease.Preset(id)
		require.NoError(t, err)
		for _, s := range disease.States() {
			sum := 0.0
			for _, p := range m.Row(s) {
				require.GreaterOrEqual(t, p, 0.0)
				sum += p
			}
			require.InDelta(t, 1.0, sum, 1e-9, "scenario %d row %s", id, s)
		}
	}
}

func TestPreset_Values(t *testing.T) {
	m, err := disease.Preset(disease.LowerContainment)
	require.NoError(t, err)
	require.Equal(t, 0.5, m.ContagionProbability())
	require.Equal(t, 0.0, m.SocialDistanceEffect())
	require.Equal(t, []float64{0, 0, 0, 0, 0.08, 0.02, 0.90}, m.Row(disease.Sick))
	require.Equal(t, 0.30, m.Probability(disease.Healthy, disease.Exposed))
	require.True(t, m.Absorbing(disease.Dead))
	require.True(t, m.Absorbing(disease.Recovered))
	require.False(t, m.Absorbing(disease.Sick))

	m2, err := disease.Preset(disease.HigherContainment)
	require.NoError(t, err)
	require.Equal(t, 0.3, m2.ContagionProbability())
	require.Equal(t, 0.05, m2.Probability(disease.Healthy, disease.Exposed))
	require.Equal(t, []disease.Scenario{1, 2}, disease.PresetIDs())
}

func TestPreset_InvalidScenario(t *testing.T) {
	for _, id := range []disease.Scenario{0, 3, -1} {
		_, err := disease.Preset(id)
		require.ErrorIs(t, err, disease.ErrInvalidScenario)
	}
}

func TestNewTransitionModel_Validation(t *testing.T) {
	bad := identityRows()
	bad[0] = []float64{0.95, 0.10, 0, 0, 0, 0, 0}

	negative := identityRows()
	negative[3] = []float64{0, 0, 0, 1.5, -0.5, 0, 0}

	nonFinite := identityRows()
	nonFinite[2] = []float64{0, 0, math.NaN(), 0, 0, 0, 0}

	infinite := identityRows()
	infinite[5] = []float64{0, 0, 0, 0, 0, math.Inf(1), 0}

	wide := make([][]float64, disease.NumStates)
	for i := range wide {
		wide[i] = make([]float64, disease.NumStates+1)
		wide[i][i] = 1
	}

	tests := []struct {
		name      string
		rows      [][]float64
		contagion float64
		distance  float64
		wantErr   error
	}{
		{"identity ok", identityRows(), 0.5, 0.1, nil},
		{"row sum 1.05", bad, 0.5, 0, disease.ErrMalformedTransitionRow},
		{"negative entry", negative, 0.5, 0, disease.ErrMalformedTransitionRow},
		{"wrong shape", [][]float64{{1}}, 0.5, 0, matrix.ErrDimensionMismatch},
		{"jagged", [][]float64{{1, 0}, {1}}, 0.5, 0, matrix.ErrDimensionMismatch},
		{"not square", wide, 0.5, 0, matrix.ErrDimensionMismatch},
		{"NaN entry", nonFinite, 0.5, 0, matrix.ErrNaNInf},
		{"Inf entry", infinite, 0.5, 0, disease.ErrMalformedTransitionRow},
		{"contagion > 1", identityRows(), 1.5, 0, disease.ErrInvalidProbability},
		{"distance < 0", identityRows(), 0.5, -0.1, disease.ErrInvalidProbability},
		{"contagion NaN", identityRows(), math.NaN(), 0, disease.ErrInvalidProbability},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := disease.NewTransitionModel(9, "custom", tc.rows, tc.contagion, tc.distance)
			if tc.wantErr == nil {
				require.NoError(t, err)
				require.Equal(t, disease.Scenario(9), m.Scenario())
				require.Equal(t, "custom", m.Name())
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
			require.Nil(t, m)
		})
	}
}

func TestNewTransitionModel_MalformedRowNamesState(t *testing.T) {
	bad := identityRows()
	bad[disease.Exposed] = []float64{0, 0.5, 0.2, 0, 0, 0, 0}

	_, err := disease.NewTransitionModel(7, "x", bad, 0, 0)
	require.ErrorIs(t, err, disease.ErrMalformedTransitionRow)
	require.Contains(t, err.Error(), "exposed row")
}

func TestTransitionModel_Immutable(t *testing.T) {
	rows := identityRows()
	m, err := disease.NewTransitionModel(5, "x", rows, 0.2, 0)
	require.NoError(t, err)

	rows[0][0] = 0
	row := m.Row(disease.Healthy)
	row[0] = 42
	tbl := m.Matrix()
	require.NoError(t, tbl.Set(0, 0, 13))

	require.Equal(t, 1.0, m.Probability(disease.Healthy, disease.Healthy))
}

func TestTransitionModel_Sample(t *testing.T) {
	m, err := disease.Preset(disease.LowerContainment)
	require.NoError(t, err)

	tests := []struct {
		from disease.State
		u    float64
		want disease.State
	}{
		{disease.Healthy, 0, disease.Healthy},
		{disease.Healthy, 0.69, disease.Healthy},
		{disease.Healthy, 0.70, disease.Healthy},
		{disease.Healthy, 0.71, disease.Exposed},
		{disease.Sick, 0, disease.Sick},
		{disease.Sick, 0.08, disease.Sick},
		{disease.Sick, 0.09, disease.Recovered},
		{disease.Sick, 0.5, disease.Dead},
		{disease.Sick, 0.9999999, disease.Dead},
		{disease.Dead, 0, disease.Dead},
		{disease.Dead, 0.999, disease.Dead},
		{disease.Recovered, 0.3, disease.Recovered},
		{disease.Incubation, 0.01, disease.Incubation},
		{disease.Incubation, 0.5, disease.Sick},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, m.Sample(tc.from, tc.u), "from=%s u=%v", tc.from, tc.u)
	}
}

func TestTransitionModel_SampleRoundingFallback(t *testing.T) {
	rows := identityRows()
	rows[disease.Healthy] = []float64{0.1, 0.2, 0.7 - 1e-12, 0, 0, 0, 0}
	m, err := disease.NewTransitionModel(4, "x", rows, 0, 0)
	require.NoError(t, err)

	require.Equal(t, disease.Infected, m.Sample(disease.Healthy, 1-1e-15))
}

func TestTransitionModel_WithKnobs(t *testing.T) {
	base, err := disease.Preset(disease.LowerContainment)
	require.NoError(t, err)

	sd, err := base.WithSocialDistance(1)
	require.NoError(t, err)
	require.Equal(t, 1.0, sd.SocialDistanceEffect())
	require.Equal(t, base.ContagionProbability(), sd.ContagionProbability())
	require.Equal(t, 0.0, base.SocialDistanceEffect())

	c, err := base.WithContagion(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, c.ContagionProbability())

	_, err = base.WithContagion(2)
	require.ErrorIs(t, err, disease.ErrInvalidProbability)
}
