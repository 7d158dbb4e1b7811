// Package epigrid is a stochastic cellular-automaton epidemic simulator:
// a square population grid where every cell holds one individual, and every
// week each individual moves between disease states while sick and dead
// individuals try to infect their healthy neighbours.
//
// 🚀 What is epigrid?
//
//	A small, seedable, single-threaded simulation core plus the tooling around it:
//		• disease  – seven states with fixed ordinals, transition models, built-in scenarios
//		• grid     – two named buffers (current / next), Moore neighbourhoods, outbreak clusters
//		• engine   – the generation step: contagion, self-transition, commit
//		• runner   – repeated runs, mean deaths, snapshot schedule
//		• report   – console lines, PNG snapshots, state curves, GIF animation
//		• config   – YAML + EPIGRID_* environment, validated, custom scenarios
//		• store    – SQLite history of runs and per-week counts
//		• metrics  – Prometheus collectors with textfile export
//
// ✨ Reproducible by default
//
//   - Every engine owns its *rand.Rand; the same seed gives the same history.
//   - Run i of a batch uses seed+i, so a batch is reproducible too.
//
// Layout:
//
//	matrix/       dense float64 matrix + row-stochastic validation
//	disease/      State, Counts, TransitionModel, presets, Registry
//	grid/         Grid, Cell, Coord, Clusters
//	engine/       Engine, Step, Run, Snapshot, Observer
//	runner/       Runner, Params, Summary
//	report/       Console, Render, Namer, RenderCurves, Animation
//	config/       Config, Load, Validate
//	store/        Store (modernc.org/sqlite)
//	metrics/      Registry (prometheus)
//	logging/      slog logger with a TRACE level
//	cmd/epigrid   CLI: run, scenarios, runs, version
//
// Quick start:
//
//	go run ./cmd/epigrid run --size 51 --scenario 1 --generations 24 --seed 1 --verbose
package epigrid
