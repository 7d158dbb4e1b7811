// SPDX-License-Identifier: MIT

// Package disease defines the disease states an individual moves through and
// the per-scenario TransitionModel that drives those moves.
//
// What:
//
//   - State: seven states with explicit ordinals (Healthy=0 … Dead=6). The
//     ordinal indexes rows and columns of the transition table.
//   - TransitionModel: an immutable 7×7 row-stochastic table plus the
//     contagion probability and the social-distance effect.
//   - Presets 1 and 2 and a Registry that can hold custom scenarios.
//   - Counts: per-state population tallies indexed by ordinal.
//
// Sampling:
//
//	Sample(from, u) accumulates the row of `from` left to right and returns the
//	first state whose cumulative probability is ≥ u.
//
// Errors:
//
//   - ErrInvalidScenario: unknown scenario id.
//   - ErrMalformedTransitionRow: a row with negative entries or a sum ≠ 1 (±1e-9).
//   - ErrInvalidProbability: contagion or social-distance outside [0,1].
//   - ErrDuplicateScenario: registering an id twice.
//   - ErrUnknownState: ParseState on an unrecognised name.
package disease
