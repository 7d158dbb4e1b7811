// SPDX-License-Identifier: MIT

package disease

import (
	"fmt"
	"maps"
	"slices"
)

// Registry maps scenario ids to transition models. It starts with the
// built-in presets; custom models are added with Register.
// A Registry is not safe for concurrent mutation.
type Registry struct {
	models map[Scenario]*TransitionModel
}

// NewRegistry returns a Registry holding every built-in preset.
func NewRegistry() *Registry {
	r := &Registry{models: make(map[Scenario]*TransitionModel)}
	for _, id := range PresetIDs() {
		m, err := Preset(id)
		if err != nil {
			// presets are static data; failure is a programmer error
			panic(err)
		}
		r.models[id] = m
	}
	return r
}

// Register adds m. Returns ErrDuplicateScenario if its id is already present
// and ErrInvalidScenario if m is nil.
func (r *Registry) Register(m *TransitionModel) error {
	if m == nil {
		return fmt.Errorf("Register: nil model: %w", ErrInvalidScenario)
	}
	if _, ok := r.models[m.Scenario()]; ok {
		return fmt.Errorf("Register(%d): %w", m.Scenario(), ErrDuplicateScenario)
	}
	r.models[m.Scenario()] = m
	return nil
}

// Lookup returns the model for id or ErrInvalidScenario.
func (r *Registry) Lookup(id Scenario) (*TransitionModel, error) {
	m, ok := r.models[id]
	if !ok {
		return nil, fmt.Errorf("Lookup(%d): %w", id, ErrInvalidScenario)
	}
	return m, nil
}

// Scenarios returns the registered ids in ascending order.
func (r *Registry) Scenarios() []Scenario {
	return slices.Sorted(maps.Keys(r.models))
}
