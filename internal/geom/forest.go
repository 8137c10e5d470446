package geom

import (
	"math"
	"math/rand"
)

// Forest is a cluster of small triangular trees scattered around an
// anchor point.
type Forest struct {
	Anchor Point      `json:"anchor"`
	Trees  [][3]Point `json:"trees"`
}

// Tree shape parameters relative to the cluster radius.
const (
	minTreesPerCluster = 6
	maxTreesPerCluster = 36
	treeSize           = 8.0
)

// BuildForests runs an independent blue-noise pass for cluster anchors
// and grows 6–36 jittered trees on each.
func BuildForests(rng *rand.Rand, bounds Rect, radius float64, count int) []Forest {
	anchors := BlueNoise(rng, bounds, radius, count)
	forests := make([]Forest, 0, len(anchors))
	for _, anchor := range anchors {
		n := minTreesPerCluster + rng.Intn(maxTreesPerCluster-minTreesPerCluster+1)
		trees := make([][3]Point, 0, n)
		for i := 0; i < n; i++ {
			center := Point{
				X: anchor.X + (rng.Float64()-0.5)*radius,
				Y: anchor.Y + (rng.Float64()-0.5)*radius,
			}
			trees = append(trees, tree(rng, center))
		}
		forests = append(forests, Forest{Anchor: anchor, Trees: trees})
	}
	return forests
}

// tree builds one triangle around center with a random size and lean.
func tree(rng *rand.Rand, center Point) [3]Point {
	size := treeSize * (0.5 + rng.Float64())
	lean := (rng.Float64() - 0.5) * math.Pi / 8
	top := Point{
		X: center.X + size*math.Sin(lean),
		Y: center.Y + size*math.Cos(lean),
	}
	return [3]Point{
		{X: center.X - size/2, Y: center.Y},
		{X: center.X + size/2, Y: center.Y},
		top,
	}
}
