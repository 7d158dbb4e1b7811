// Package runner drives repeated simulations of one scenario and averages
// their death counts.
//
// What:
//
//   - Run i uses its own engine seeded with Seed+i.
//   - Before the first step and after every step the population counts go to
//     the console (verbose), the metrics registry and the run store.
//   - On the last run, snapshots are exported after the configured weeks and
//     the optional state-curve chart and GIF animation are written.
//   - The death accumulator is local to Run; a Runner keeps no totals across
//     calls.
//
// Errors:
//
//   - ErrInvalidParams for a non-positive size or run count, or negative
//     generations.
//   - context errors, checked between generations.
//   - wrapped I/O errors from the report, store and metrics writers.
package runner
