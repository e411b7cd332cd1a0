package camera

import (
	"math"
	"testing"
)

func TestPositionOnOrbit(t *testing.T) {
	c := New(60)
	c.Yaw = 0
	c.Pitch = 0
	c.Distance = 10

	p := c.Position()
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y) > 1e-9 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("Position at yaw=0 pitch=0 = %+v, want (10, 0, 0)", p)
	}

	c.Pitch = math.Pi / 2 * 0.99
	p = c.Position()
	if p.Y <= 9 {
		t.Errorf("near-vertical pitch: Y = %v, want near distance", p.Y)
	}
}

func TestPositionKeepsDistance(t *testing.T) {
	c := New(60)
	for _, yaw := range []float64{0, 1, -2, 3} {
		for _, pitch := range []float64{0, 0.5, -1} {
			c.Yaw, c.Pitch = yaw, pitch
			p := c.Position()
			d := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
			if math.Abs(d-c.Distance) > 1e-9 {
				t.Errorf("yaw=%v pitch=%v: |position| = %v, want %v", yaw, pitch, d, c.Distance)
			}
		}
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	c := New(60)

	c.Orbit(0, 10) // far past the pole
	if c.Pitch > pitchLimit {
		t.Errorf("Pitch = %v, want <= %v", c.Pitch, pitchLimit)
	}

	c.Orbit(0, -20)
	if c.Pitch < -pitchLimit {
		t.Errorf("Pitch = %v, want >= %v", c.Pitch, -pitchLimit)
	}
}

func TestOrbitWrapsYaw(t *testing.T) {
	c := New(60)
	c.Yaw = math.Pi - 0.1

	c.Orbit(0.2, 0)
	if c.Yaw > math.Pi || c.Yaw < -math.Pi {
		t.Errorf("Yaw = %v, want wrapped to [-π, π]", c.Yaw)
	}
}

func TestDollyClamps(t *testing.T) {
	c := New(60)

	c.Dolly(1e-6)
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want clamped to min %v", c.Distance, c.MinDistance)
	}

	c.Dolly(1e9)
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want clamped to max %v", c.Distance, c.MaxDistance)
	}
}

func TestReset(t *testing.T) {
	c := New(60)
	c.Orbit(1, 0.3)
	c.Dolly(0.5)
	c.Target.X = 12

	c.Reset(60)
	if c.Target.X != 0 {
		t.Errorf("Target.X = %v after reset, want 0", c.Target.X)
	}
	if c.Distance != 60*1.4 {
		t.Errorf("Distance = %v after reset, want %v", c.Distance, 60*1.4)
	}
}
