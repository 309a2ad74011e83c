package sir

import "sir-ca/internal/core"

// CountInfectedNeighbors returns, for every cell of g, how many of its eight
// Moore neighbours are infected.
func CountInfectedNeighbors(g *core.ByteGrid, boundary Boundary) []uint8 {
	counts := make([]uint8, len(g.Cells()))
	countInfectedNeighbors(g, boundary, counts)
	return counts
}

// countInfectedNeighbors scatters each infected cell into its neighbours'
// counters. dst must hold W*H entries and is overwritten.
func countInfectedNeighbors(g *core.ByteGrid, boundary Boundary, dst []uint8) {
	for i := range dst {
		dst[i] = 0
	}
	w, h := g.W, g.H
	cells := g.Cells()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if State(cells[y*w+x]) != Infected {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if boundary == BoundaryWrap {
						nx, ny = g.Wrap(nx, ny)
					} else if !g.InBounds(nx, ny) {
						continue
					}
					dst[ny*w+nx]++
				}
			}
		}
	}
}
