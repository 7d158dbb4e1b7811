package grid

import "github.com/katalvlaran/epigrid/disease"

// Clusters finds all 8-connected groups of cells in the current buffer whose
// state satisfies match. Groups are discovered in row-major order of their
// first cell; cells within a group are in BFS order.
//
// Clusters(disease.State.Infectious) yields the outbreak foci of a generation.
//
// Time:   O(N²·8).
// Memory: O(N²) for visited flags and output.
func (g *Grid) Clusters(match func(disease.State) bool) [][]Coord {
	seen := make([]bool, g.size*g.size)
	var comps [][]Coord

	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if !match(g.current[row][col].State) {
				continue
			}
			i0 := g.index(row, col)
			if seen[i0] {
				continue
			}
			// BFS to collect component
			queue := []int{i0}
			seen[i0] = true
			var comp []Coord

			for qi := 0; qi < len(queue); qi++ {
				u := g.Coordinate(queue[qi])
				comp = append(comp, u)
				for v := range g.NeighborsOf(u.Row, u.Col) {
					if !match(g.current[v.Row][v.Col].State) {
						continue
					}
					vi := g.index(v.Row, v.Col)
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}
