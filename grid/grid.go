package grid

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/epigrid/disease"
)

// New allocates an N×N grid of Healthy cells in both buffers and seeds the
// center cell (size/2, size/2) as Sick in both.
// Returns ErrInvalidSize if size ≤ 0.
// Complexity: O(N²) time and memory.
func New(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("New(%d): %w", size, ErrInvalidSize)
	}
	g := &Grid{
		size:    size,
		current: newBuffer(size),
		next:    newBuffer(size),
	}
	c := size / 2
	g.current[c][c].State = disease.Sick
	g.next[c][c].State = disease.Sick

	return g, nil
}

// newBuffer allocates a size×size buffer backed by one contiguous slice.
// The zero Cell is Healthy.
func newBuffer(size int) [][]Cell {
	backing := make([]Cell, size*size)
	rows := make([][]Cell, size)
	for i := range rows {
		rows[i] = backing[i*size : (i+1)*size]
	}
	return rows
}

// Size returns N.
func (g *Grid) Size() int { return g.size }

// Center returns the seeded cell position (size/2, size/2).
func (g *Grid) Center() Coord { return Coord{Row: g.size / 2, Col: g.size / 2} }

// InBounds reports whether (row,col) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Current reads the state of (row,col) from the current buffer.
// Panics if the coordinates are out of range, like a slice index.
func (g *Grid) Current(row, col int) disease.State {
	return g.current[row][col].State
}

// At is the bounds-checked form of Current.
func (g *Grid) At(row, col int) (disease.State, error) {
	if !g.InBounds(row, col) {
		return 0, fmt.Errorf("At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return g.current[row][col].State, nil
}

// Next reads the state of (row,col) from the next buffer.
func (g *Grid) Next(row, col int) disease.State {
	return g.next[row][col].State
}

// SetNext writes s into the next buffer at (row,col).
func (g *Grid) SetNext(row, col int, s disease.State) {
	g.next[row][col].State = s
}

// NeighborsOf returns a lazy, restartable sequence of the in-bounds Moore
// neighbours of (row,col) in row-major order. Self is never yielded and
// edges are clipped, so corners have 3 neighbours and edges 5.
func (g *Grid) NeighborsOf(row, col int) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for _, d := range mooreOffsets {
			r, c := row+d[0], col+d[1]
			if !g.InBounds(r, c) {
				continue
			}
			if !yield(Coord{Row: r, Col: c}) {
				return
			}
		}
	}
}

// Commit copies every cell of next into current. next keeps its content and
// serves as the working copy for the following step.
// Complexity: O(N²).
func (g *Grid) Commit() {
	for i := range g.next {
		copy(g.current[i], g.next[i])
	}
}

// CountsByState tallies the current buffer per state.
// The counts always sum to N².
func (g *Grid) CountsByState() disease.Counts {
	var counts disease.Counts
	for _, row := range g.current {
		for _, cell := range row {
			counts[cell.State.Ordinal()]++
		}
	}
	return counts
}

// DeathCount returns the number of Dead cells in the current buffer.
func (g *Grid) DeathCount() int {
	deaths := 0
	for _, row := range g.current {
		for _, cell := range row {
			if cell.State == disease.Dead {
				deaths++
			}
		}
	}
	return deaths
}

// Snapshot returns a deep copy of the current buffer as states, indexed [row][col].
func (g *Grid) Snapshot() [][]disease.State {
	out := make([][]disease.State, g.size)
	for i, row := range g.current {
		out[i] = make([]disease.State, g.size)
		for j, cell := range row {
			out[i][j] = cell.State
		}
	}
	return out
}

// index maps (row,col) to a row-major index: row*size + col.
func (g *Grid) index(row, col int) int {
	return row*g.size + col
}

// Coordinate converts a row-major index back to a Coord.
func (g *Grid) Coordinate(idx int) Coord {
	return Coord{Row: idx / g.size, Col: idx % g.size}
}
