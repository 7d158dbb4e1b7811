// SPDX-License-Identifier: MIT

package disease

import (
	"fmt"
	"slices"
)

// Built-in scenarios.
const (
	// LowerContainment spreads faster: 30% weekly exposure, contagion 0.5.
	LowerContainment Scenario = 1
	// HigherContainment spreads slower: 5% weekly exposure, contagion 0.3.
	HigherContainment Scenario = 2
)

// sharedTail holds the Infected..Dead rows common to both presets.
var sharedTail = [][]float64{
	{0.00, 0.00, 0.40, 0.60, 0.00, 0.00, 0.00}, // infected
	{0.00, 0.00, 0.00, 0.02, 0.98, 0.00, 0.00}, // incubation
	{0.00, 0.00, 0.00, 0.00, 0.08, 0.02, 0.90}, // sick
	{0.00, 0.00, 0.00, 0.00, 0.00, 1.00, 0.00}, // recovered
	{0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 1.00}, // dead
}

type preset struct {
	name      string
	head      [][]float64 // healthy and exposed rows
	contagion float64
}

var presets = map[Scenario]preset{
	LowerContainment: {
		name: "lower containment",
		head: [][]float64{
			{0.70, 0.30, 0.00, 0.00, 0.00, 0.00, 0.00},
			{0.00, 0.40, 0.60, 0.00, 0.00, 0.00, 0.00},
		},
		contagion: 0.5,
	},
	HigherContainment: {
		name: "higher containment",
		// The healthy row keeps the effective 5% exposure of the historic
		// 0.95/0.10 table, normalised so the row sums to 1.
		head: [][]float64{
			{0.95, 0.05, 0.00, 0.00, 0.00, 0.00, 0.00},
			{0.00, 0.80, 0.20, 0.00, 0.00, 0.00, 0.00},
		},
		contagion: 0.3,
	},
}

// Preset returns the built-in model for id.
// Returns ErrInvalidScenario if id is not a built-in scenario.
func Preset(id Scenario) (*TransitionModel, error) {
	p, ok := presets[id]
	if !ok {
		return nil, fmt.Errorf("Preset(%d): %w", id, ErrInvalidScenario)
	}
	rows := make([][]float64, 0, NumStates)
	rows = append(rows, p.head...)
	rows = append(rows, sharedTail...)

	return NewTransitionModel(id, p.name, rows, p.contagion, 0)
}

// PresetIDs returns the built-in scenario ids in ascending order.
func PresetIDs() []Scenario {
	ids := make([]Scenario, 0, len(presets))
	for id := range presets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
