package grid

import "github.com/katalvlaran/epigrid/disease"

// Cell is one individual. It has no identity beyond its grid position.
type Cell struct {
	State disease.State
}

// Coord addresses a cell by row and column.
type Coord struct {
	Row, Col int
}

// mooreOffsets lists the 8 neighbour offsets (dRow, dCol) in row-major order:
// the row above left to right, the same row skipping self, the row below.
var mooreOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid owns the current and next generation buffers of an N×N population.
// Both buffers always have the same dimensions.
type Grid struct {
	size    int
	current [][]Cell
	next    [][]Cell
}
