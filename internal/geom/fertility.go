package geom

import opensimplex "github.com/ojrac/opensimplex-go"

// Fertility is a smooth noise field over the map used to vary settlement
// populations: fertile valleys grow larger villages.
type Fertility struct {
	noise opensimplex.Noise
	scale float64
}

// NewFertility creates a field deterministic in the seed. Scale controls
// how quickly fertility varies across the map; values around 1/300 give
// region-sized gradients on a few-thousand-unit map.
func NewFertility(seed int64, scale float64) *Fertility {
	return &Fertility{noise: opensimplex.NewNormalized(seed), scale: scale}
}

// At returns the fertility at p in [0, 1].
func (f *Fertility) At(p Point) float64 {
	return f.noise.Eval2(p.X*f.scale, p.Y*f.scale)
}
