package geom

import (
	"math"
	"math/rand"
)

// BlueNoise scatters up to count points inside bounds so that no two
// points lie closer than radius to each other.
//
// The bounds are partitioned into a uniform grid with cell side
// radius/√2, so a cell can hold at most one accepted point and any two
// points outside each other's 5×5 cell neighborhood are ≥ radius apart.
// Candidate cells are drawn uniformly and consumed whether the point in
// them is accepted or rejected, which guarantees termination: the loop
// ends when count points are placed or the cell pool runs dry, whichever
// comes first. A shortfall is not an error; callers read the returned
// length.
func BlueNoise(rng *rand.Rand, bounds Rect, radius float64, count int) []Point {
	if count <= 0 || radius <= 0 {
		return nil
	}
	cell := radius / math.Sqrt2
	cols := int(math.Ceil(bounds.Width / cell))
	rows := int(math.Ceil(bounds.Height / cell))
	if cols < 1 || rows < 1 {
		return nil
	}

	// Accepted points keyed by their grid cell.
	occupied := make(map[[2]int]Point)

	pool := make([][2]int, 0, cols*rows)
	for cx := 0; cx < cols; cx++ {
		for cy := 0; cy < rows; cy++ {
			pool = append(pool, [2]int{cx, cy})
		}
	}

	points := make([]Point, 0, count)
	for len(points) < count && len(pool) > 0 {
		i := rng.Intn(len(pool))
		c := pool[i]
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]

		p := Point{
			X: (float64(c[0]) + rng.Float64()) * cell,
			Y: (float64(c[1]) + rng.Float64()) * cell,
		}
		if !bounds.Contains(p) {
			continue
		}
		if tooCrowded(occupied, c, p, radius) {
			continue
		}
		occupied[c] = p
		points = append(points, p)
	}
	return points
}

// tooCrowded checks the 5×5 cell neighborhood of c for an accepted point
// within radius of p.
func tooCrowded(occupied map[[2]int]Point, c [2]int, p Point, radius float64) bool {
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			q, ok := occupied[[2]int{c[0] + dx, c[1] + dy}]
			if ok && Distance(p, q) < radius {
				return true
			}
		}
	}
	return false
}
