// Package report turns engine output into artifacts: tab-separated console
// lines, PNG snapshots of the population (one pixel block per cell, optional
// caption), snapshot file names, state curves rendered with go-chart and an
// animated GIF of the collected snapshots.
//
// The package only consumes the engine's read API (States, CountsByState,
// DeathCount); nothing here mutates a simulation.
package report
