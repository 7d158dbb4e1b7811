// Package grid holds the population of a simulation: a square N×N lattice of
// cells, each carrying one disease.State, stored twice.
//
// What:
//
//   - current: the authoritative state of the present generation.
//   - next:    the staging buffer written during a generation step; it is
//     also read during the step (contagion reads a neighbour's up-to-date
//     state from next).
//   - Commit copies next into current; outside of an in-progress step the
//     two buffers hold identical content.
//   - NeighborsOf yields the up-to-8 Moore neighbours of a cell, clipped at
//     the edges (no wraparound), in row-major order.
//   - Clusters finds 8-connected groups of cells matching a predicate
//     (for example outbreak foci of infectious cells).
//
// Buffers:
//
//	Every accessor names the buffer it touches: Current/CountsByState/
//	DeathCount/Snapshot/Clusters read current; Next/SetNext touch next.
//	The two buffers are never aliased.
//
// Complexity:
//
//   - New, Commit, CountsByState, Snapshot: O(N²).
//   - NeighborsOf: O(1) per yielded neighbour.
//   - Clusters: O(N²·8) time, O(N²) memory.
//
// Errors:
//
//   - ErrInvalidSize: size ≤ 0.
//   - ErrOutOfRange: coordinates outside the grid (At only).
package grid
