// Package field provides the procedural noise sources and the flow-field
// sampler that drive particle motion.
package field

import (
	"math"
	"math/rand"
)

// Source is a deterministic 3D scalar noise function.
// Implementations must be safe for concurrent sampling after construction.
type Source interface {
	// Sample returns a value in approximately [-1, 1], continuous and
	// once-differentiable in each axis.
	Sample(x, y, z float64) float64
}

// Perlin is a classic improved Perlin noise generator.
// Immutable after construction, so concurrent Sample calls need no locking.
type Perlin struct {
	perm [512]int
}

// NewPerlin creates a Perlin generator seeded from the supplied RNG.
// The RNG is only used during construction; the caller retains ownership.
func NewPerlin(rng *rand.Rand) *Perlin {
	p := &Perlin{}

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}

	// Fisher-Yates shuffle
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Tile to 512 so perm[a+1] never needs a modulo
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}

	return p
}

// Sample returns the noise value at the given 3D coordinates.
func (p *Perlin) Sample(x, y, z float64) float64 {
	// Unit cube containing the point
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255
	Z := int(math.Floor(z)) & 255

	// Relative position within the cube
	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	u := fade(x)
	v := fade(y)
	w := fade(z)

	// Hash coordinates of the 8 cube corners
	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	// Blend gradient contributions from all corners
	return lerp(w, lerp(v, lerp(u, grad(p.perm[AA], x, y, z),
		grad(p.perm[BA], x-1, y, z)),
		lerp(u, grad(p.perm[AB], x, y-1, z),
			grad(p.perm[BB], x-1, y-1, z))),
		lerp(v, lerp(u, grad(p.perm[AA+1], x, y, z-1),
			grad(p.perm[BA+1], x-1, y, z-1)),
			lerp(u, grad(p.perm[AB+1], x, y-1, z-1),
				grad(p.perm[BB+1], x-1, y-1, z-1))))
}

// fade is the quintic smoothing curve 6t^5 - 15t^4 + 10t^3.
// Zero first and second derivative at t=0 and t=1 avoids lattice seams.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad selects one of 12 gradient directions from the low 4 hash bits and
// returns its dot product with (x, y, z).
func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
