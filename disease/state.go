// SPDX-License-Identifier: MIT

package disease

import (
	"fmt"
	"strings"
)

// State is the disease state of one individual.
// The numeric value is the ordinal used to index transition rows and columns.
type State uint8

// Ordinals are spelled out so that reordering declarations cannot shift them.
const (
	Healthy    State = 0
	Exposed    State = 1
	Infected   State = 2
	Incubation State = 3
	Sick       State = 4
	Recovered  State = 5
	Dead       State = 6
)

// NumStates is the number of disease states.
const NumStates = 7

var stateNames = [NumStates]string{
	Healthy:    "healthy",
	Exposed:    "exposed",
	Infected:   "infected",
	Incubation: "incubation",
	Sick:       "sick",
	Recovered:  "recovered",
	Dead:       "dead",
}

// States returns all states in ordinal order.
func States() []State {
	return []State{Healthy, Exposed, Infected, Incubation, Sick, Recovered, Dead}
}

// Ordinal returns the row/column index of s in a transition table.
func (s State) Ordinal() int { return int(s) }

// Valid reports whether s is one of the seven defined states.
func (s State) Valid() bool { return s < NumStates }

// Infectious reports whether s spreads contagion to neighbours (Sick or Dead).
func (s State) Infectious() bool { return s == Sick || s == Dead }

// String returns the lowercase state name.
func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("state(%d)", uint8(s))
	}
	return stateNames[s]
}

// ParseState maps a (case-insensitive) state name to its State.
func ParseState(name string) (State, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range stateNames {
		if sn == n {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("ParseState(%q): %w", name, ErrUnknownState)
}

// Counts tallies individuals per state, indexed by ordinal.
type Counts [NumStates]int

// Get returns the count for s.
func (c Counts) Get(s State) int { return c[s.Ordinal()] }

// Total returns the sum over all states.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Map returns the counts as a State-keyed map containing every state.
func (c Counts) Map() map[State]int {
	m := make(map[State]int, NumStates)
	for _, s := range States() {
		m[s] = c[s]
	}
	return m
}
