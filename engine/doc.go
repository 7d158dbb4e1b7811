// SPDX-License-Identifier: MIT

// Package engine advances an epidemic one generation at a time.
//
// An Engine owns a grid.Grid, a disease.TransitionModel, a generation counter
// starting at 0 and a single *rand.Rand from which every draw is taken.
//
// Step, for every cell (i,j) in row-major order over the current buffer:
//
//  1. If current[i][j] is Sick or Dead, run contagion against each Moore
//     neighbour: draw u1; skip the neighbour when u1 < socialDistanceEffect;
//     otherwise, if the neighbour is Healthy in next, draw u2 and set it Sick
//     in next when u2 ≤ contagionProbability.
//  2. For every cell, draw u and write Sample(current[i][j], u) into next[i][j].
//
// Then next is committed into current and the generation counter increments.
//
// Ordering:
//
//	Contagion reads and writes next; self-transition reads current and writes
//	next. next[i][j] is therefore whichever write happened last in iteration
//	order. A Healthy cell infected by an earlier neighbour is overwritten by its
//	own self-transition (sampled from its Healthy row) when iteration reaches
//	it; a later infectious neighbour below or to the right can still convert
//	it afterwards. Infection is thus only retained from neighbours visited after
//	the cell itself. This is the historic behaviour of the model and is kept
//	as is.
//
// Concurrency:
//
//	An Engine is not safe for concurrent use. Step runs to completion; Run only
//	observes context cancellation between generations.
package engine
