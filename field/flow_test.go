package field

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testFlow(weight float64) *Flow {
	src := NewPerlin(rand.New(rand.NewSource(42)))
	return NewFlow(src,
		r3.Vec{X: 0.02, Y: 0.02, Z: 0.02},
		r3.Vec{X: 0.08, Y: 0.08, Z: 0.08},
		weight,
	)
}

func TestFlowDirectionBounded(t *testing.T) {
	f := testFlow(0.7)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		p := r3.Vec{
			X: rng.Float64()*60 - 30,
			Y: rng.Float64()*60 - 30,
			Z: rng.Float64()*60 - 30,
		}
		d := f.Direction(p, rng.Float64()*100)

		for _, v := range []float64{d.X, d.Y, d.Z} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("Direction(%+v) = %+v, non-finite component", p, d)
			}
		}
		// X and Y come from sin/cos products, so |v| <= 1.
		// Z is cos(theta) + 0.5*sin(zAngle), so |Z| <= 1.5.
		if math.Abs(d.X) > 1 || math.Abs(d.Y) > 1 {
			t.Fatalf("Direction(%+v) = %+v, horizontal component out of range", p, d)
		}
		if math.Abs(d.Z) > 1.5 {
			t.Fatalf("Direction(%+v) = %+v, vertical component out of range", p, d)
		}
	}
}

func TestFlowDeterminism(t *testing.T) {
	a := testFlow(0.7)
	b := testFlow(0.7)

	p := r3.Vec{X: 3.2, Y: -7.7, Z: 12.1}
	for _, tm := range []float64{0, 1.5, 9000} {
		da := a.Direction(p, tm)
		db := b.Direction(p, tm)
		if da != db {
			t.Errorf("Direction at t=%v differs between identical flows: %+v vs %+v", tm, da, db)
		}
	}
}

func TestFlowBlendWeight(t *testing.T) {
	// With weight 1 the secondary channel must not contribute: changing the
	// secondary scale must not change the output.
	src := NewPerlin(rand.New(rand.NewSource(42)))
	a := NewFlow(src, r3.Vec{X: 0.02, Y: 0.02, Z: 0.02}, r3.Vec{X: 0.08, Y: 0.08, Z: 0.08}, 1.0)
	b := NewFlow(src, r3.Vec{X: 0.02, Y: 0.02, Z: 0.02}, r3.Vec{X: 0.33, Y: 0.19, Z: 0.54}, 1.0)

	p := r3.Vec{X: 5, Y: 6, Z: 7}
	if da, db := a.Direction(p, 2.5), b.Direction(p, 2.5); da != db {
		t.Errorf("weight=1 flows differ with secondary scale change: %+v vs %+v", da, db)
	}

	// With an interior weight the secondary channel must contribute.
	c := NewFlow(src, r3.Vec{X: 0.02, Y: 0.02, Z: 0.02}, r3.Vec{X: 0.08, Y: 0.08, Z: 0.08}, 0.5)
	d := NewFlow(src, r3.Vec{X: 0.02, Y: 0.02, Z: 0.02}, r3.Vec{X: 0.33, Y: 0.19, Z: 0.54}, 0.5)
	if dc, dd := c.Direction(p, 2.5), d.Direction(p, 2.5); dc == dd {
		t.Error("weight=0.5 flows identical despite different secondary scales")
	}
}

func TestFlowAnglesMatchDirection(t *testing.T) {
	f := testFlow(0.6)
	p := r3.Vec{X: 1.25, Y: -4.5, Z: 8}

	theta, phi := f.Angles(p, 3.0)
	d := f.Direction(p, 3.0)

	wantX := math.Sin(theta) * math.Cos(phi)
	wantY := math.Sin(theta) * math.Sin(phi)
	if math.Abs(d.X-wantX) > 1e-12 || math.Abs(d.Y-wantY) > 1e-12 {
		t.Errorf("Direction = %+v, want horizontal (%v, %v) from Angles", d, wantX, wantY)
	}
}
