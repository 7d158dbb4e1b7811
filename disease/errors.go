// SPDX-License-Identifier: MIT

package disease

import "errors"

var (
	// ErrInvalidScenario indicates a scenario id that is not registered.
	ErrInvalidScenario = errors.New("disease: invalid scenario")

	// ErrMalformedTransitionRow indicates a transition row that is not a
	// probability partition (negative entry or sum ≠ 1 within tolerance).
	ErrMalformedTransitionRow = errors.New("disease: malformed transition row")

	// ErrInvalidProbability indicates a probability knob outside [0,1].
	ErrInvalidProbability = errors.New("disease: probability out of range")

	// ErrDuplicateScenario indicates a scenario id registered twice.
	ErrDuplicateScenario = errors.New("disease: duplicate scenario")

	// ErrUnknownState indicates an unrecognised state name.
	ErrUnknownState = errors.New("disease: unknown state")
)
