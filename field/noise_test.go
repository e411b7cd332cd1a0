package field

import (
	"math"
	"math/rand"
	"testing"
)

func TestPerlinPermutationTable(t *testing.T) {
	p := NewPerlin(rand.New(rand.NewSource(1)))

	// First half must be a permutation of 0..255
	seen := make(map[int]bool, 256)
	for i := 0; i < 256; i++ {
		v := p.perm[i]
		if v < 0 || v > 255 {
			t.Fatalf("perm[%d] = %d, out of range", i, v)
		}
		if seen[v] {
			t.Fatalf("perm[%d] = %d appears twice", i, v)
		}
		seen[v] = true
	}

	// Second half must tile the first
	for i := 0; i < 256; i++ {
		if p.perm[i+256] != p.perm[i] {
			t.Errorf("perm[%d] = %d, want %d (tiled copy)", i+256, p.perm[i+256], p.perm[i])
		}
	}
}

func TestPerlinDeterminism(t *testing.T) {
	a := NewPerlin(rand.New(rand.NewSource(42)))
	b := NewPerlin(rand.New(rand.NewSource(42)))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100

		va := a.Sample(x, y, z)
		if vb := b.Sample(x, y, z); va != vb {
			t.Fatalf("Sample(%v, %v, %v) differs between identical seeds: %v vs %v", x, y, z, va, vb)
		}
		// Repeated calls on the same generator are bit-reproducible
		if v2 := a.Sample(x, y, z); va != v2 {
			t.Fatalf("Sample(%v, %v, %v) not reproducible: %v vs %v", x, y, z, va, v2)
		}
	}
}

func TestPerlinContinuityAtLatticeBoundaries(t *testing.T) {
	p := NewPerlin(rand.New(rand.NewSource(3)))

	const eps = 1e-3
	// Sample across several integer crossings on each axis; the value change
	// over eps must stay O(eps). Gradient magnitude is bounded by ~6 for the
	// standard gradient set, so 0.02 is a generous ceiling for eps=1e-3.
	const maxJump = 0.02

	crossings := []float64{-3, -1, 0, 1, 2, 5, 17}
	for _, c := range crossings {
		for axis := 0; axis < 3; axis++ {
			lo := [3]float64{0.37, 0.61, 0.83}
			hi := lo
			lo[axis] = c - eps
			hi[axis] = c + eps

			vLo := p.Sample(lo[0], lo[1], lo[2])
			vHi := p.Sample(hi[0], hi[1], hi[2])
			if jump := math.Abs(vHi - vLo); jump > maxJump {
				t.Errorf("axis %d crossing %v: |Δ| = %v over 2ε, want <= %v", axis, c, jump, maxJump)
			}
		}
	}
}

func TestPerlinRange(t *testing.T) {
	p := NewPerlin(rand.New(rand.NewSource(9)))

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20000; i++ {
		x := rng.Float64()*512 - 256
		y := rng.Float64()*512 - 256
		z := rng.Float64()*512 - 256

		v := p.Sample(x, y, z)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Sample(%v, %v, %v) = %v", x, y, z, v)
		}
		if v < -1.5 || v > 1.5 {
			t.Fatalf("Sample(%v, %v, %v) = %v, outside [-1.5, 1.5]", x, y, z, v)
		}
	}
}

func TestPerlinZeroAtLatticePoints(t *testing.T) {
	// Gradient dot products vanish at lattice corners, so the value at any
	// integer coordinate is exactly zero.
	p := NewPerlin(rand.New(rand.NewSource(5)))

	for _, c := range [][3]float64{{0, 0, 0}, {1, 2, 3}, {-4, 7, -1}, {100, 100, 100}} {
		if v := p.Sample(c[0], c[1], c[2]); v != 0 {
			t.Errorf("Sample(%v, %v, %v) = %v, want 0", c[0], c[1], c[2], v)
		}
	}
}

func TestFadeEndpoints(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"zero", 0, 0},
		{"one", 1, 1},
		{"half", 0.5, 0.5},
	}

	for _, tt := range tests {
		if got := fade(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("fade(%v) = %v, want %v (%s)", tt.t, got, tt.want, tt.name)
		}
	}

	// Near-zero derivative at both endpoints
	const h = 1e-4
	if d := (fade(h) - fade(0)) / h; math.Abs(d) > 1e-3 {
		t.Errorf("fade derivative at 0 = %v, want ~0", d)
	}
	if d := (fade(1) - fade(1-h)) / h; math.Abs(d) > 1e-3 {
		t.Errorf("fade derivative at 1 = %v, want ~0", d)
	}
}

func TestSimplexDeterminism(t *testing.T) {
	a := NewSimplex(42)
	b := NewSimplex(42)

	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 500; i++ {
		x := rng.Float64()*100 - 50
		y := rng.Float64()*100 - 50
		z := rng.Float64()*100 - 50

		if va, vb := a.Sample(x, y, z), b.Sample(x, y, z); va != vb {
			t.Fatalf("Sample(%v, %v, %v) differs between identical seeds: %v vs %v", x, y, z, va, vb)
		}
	}
}
