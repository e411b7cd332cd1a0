package field

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Simplex wraps an OpenSimplex generator behind the Source interface.
// Simplex noise has a slightly different visual character than Perlin
// (less axis-aligned banding) at comparable cost.
type Simplex struct {
	noise opensimplex.Noise
}

// NewSimplex creates an OpenSimplex source for the given seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.New(seed)}
}

// Sample returns the noise value at the given 3D coordinates.
func (s *Simplex) Sample(x, y, z float64) float64 {
	return s.noise.Eval3(x, y, z)
}
