package geom

import (
	"fmt"

	"github.com/fogleman/delaunay"
)

// Road is an edge of the road network between two map points.
type Road struct {
	A        Point   `json:"a"`
	B        Point   `json:"b"`
	Centroid Point   `json:"centroid"`
	Length   float64 `json:"length"`
}

// Touches reports whether p is one of the road's endpoints.
func (r Road) Touches(p Point) bool {
	return r.A == p || r.B == p
}

// BuildRoads triangulates the settlement points together with the world
// corner anchors and keeps every unique triangulation edge no longer
// than maxLength. Filtering after triangulation discards the long
// corner-to-corner diagonals and leaves only local connections.
func BuildRoads(points []Point, bounds Rect, maxLength float64) ([]Road, error) {
	all := make([]delaunay.Point, 0, len(points)+4)
	for _, p := range points {
		all = append(all, delaunay.Point{X: p.X, Y: p.Y})
	}
	for _, c := range bounds.Corners() {
		all = append(all, delaunay.Point{X: c.X, Y: c.Y})
	}
	if len(all) < 3 {
		return nil, nil
	}

	tri, err := delaunay.Triangulate(all)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d points: %w", len(all), err)
	}

	seen := make(map[[2]int]struct{})
	var roads []Road
	ts := tri.Triangles
	for i := 0; i < len(ts); i += 3 {
		for _, e := range [3][2]int{{ts[i], ts[i+1]}, {ts[i+1], ts[i+2]}, {ts[i+2], ts[i]}} {
			a, b := e[0], e[1]
			if a > b {
				a, b = b, a
			}
			if _, ok := seen[[2]int{a, b}]; ok {
				continue
			}
			seen[[2]int{a, b}] = struct{}{}

			pa := Point{X: all[a].X, Y: all[a].Y}
			pb := Point{X: all[b].X, Y: all[b].Y}
			length := Distance(pa, pb)
			if length > maxLength {
				continue
			}
			roads = append(roads, Road{
				A:        pa,
				B:        pb,
				Centroid: Midpoint(pa, pb),
				Length:   length,
			})
		}
	}
	return roads, nil
}
