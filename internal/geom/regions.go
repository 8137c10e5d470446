package geom

import "sort"

// Region is the polygonal territory outline of a settlement, built from
// the centroids of every road touching it.
type Region struct {
	Center   Point   `json:"center"`
	Vertices []Point `json:"vertices"`
}

// BuildRegions derives one region per settlement point. The vertices are
// the centroids of the touching roads, sorted by bearing around the
// settlement so the polygon never self-intersects. A settlement with N
// touching roads yields a region with exactly N vertices.
func BuildRegions(settlements []Point, roads []Road) []Region {
	regions := make([]Region, 0, len(settlements))
	for _, center := range settlements {
		var vertices []Point
		for _, road := range roads {
			if road.Touches(center) {
				vertices = append(vertices, road.Centroid)
			}
		}
		sort.Slice(vertices, func(i, j int) bool {
			return Bearing(center, vertices[i]) < Bearing(center, vertices[j])
		})
		regions = append(regions, Region{Center: center, Vertices: vertices})
	}
	return regions
}
