// Package geom provides the 2D primitives and generative spatial
// algorithms of the sandbox map: blue-noise point sampling, the Delaunay
// road network, angular region polygons, and forest clusters.
package geom

import "math"

// Point is a position in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Bearing returns the angle of the direction from a to b in radians,
// normalized to [0, 2π).
func Bearing(a, b Point) float64 {
	rad := math.Atan2(b.Y-a.Y, b.X-a.X)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return rad
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Rect is an axis-aligned rectangle anchored at the origin.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Corners returns the four corner points of the rectangle.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{0, 0},
		{r.Width, 0},
		{r.Width, r.Height},
		{0, r.Height},
	}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= 0 && p.X <= r.Width && p.Y >= 0 && p.Y <= r.Height
}
