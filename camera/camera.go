// Package camera provides an orbit camera for the 3D viewport.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// pitchLimit keeps the camera off the poles, where yaw becomes degenerate.
const pitchLimit = math.Pi/2 - 0.05

// Camera orbits a target point at a given distance, yaw and pitch.
type Camera struct {
	Target r3.Vec

	// Yaw is the azimuth around the Y axis; Pitch the elevation from the
	// horizontal plane. Radians.
	Yaw, Pitch float64

	// Distance from the target.
	Distance float64

	// Distance constraints
	MinDistance, MaxDistance float64
}

// New creates a camera orbiting the origin, sized to frame a field of the
// given extent.
func New(fieldSize float64) *Camera {
	return &Camera{
		Yaw:         math.Pi / 4,
		Pitch:       math.Pi / 8,
		Distance:    fieldSize * 1.4,
		MinDistance: fieldSize * 0.15,
		MaxDistance: fieldSize * 4,
	}
}

// Position returns the camera's world position.
func (c *Camera) Position() r3.Vec {
	cosPitch := math.Cos(c.Pitch)
	return r3.Vec{
		X: c.Target.X + c.Distance*cosPitch*math.Cos(c.Yaw),
		Y: c.Target.Y + c.Distance*math.Sin(c.Pitch),
		Z: c.Target.Z + c.Distance*cosPitch*math.Sin(c.Yaw),
	}
}

// Orbit rotates the camera around the target. Pitch is clamped short of the
// poles; yaw wraps freely.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw += dYaw
	if c.Yaw > math.Pi {
		c.Yaw -= 2 * math.Pi
	} else if c.Yaw < -math.Pi {
		c.Yaw += 2 * math.Pi
	}

	c.Pitch = clamp(c.Pitch+dPitch, -pitchLimit, pitchLimit)
}

// Dolly scales the orbit distance, clamped to the configured range.
func (c *Camera) Dolly(factor float64) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Reset returns the camera to the default framing for the given field size.
func (c *Camera) Reset(fieldSize float64) {
	c.Target = r3.Vec{}
	c.Yaw = math.Pi / 4
	c.Pitch = math.Pi / 8
	c.Distance = fieldSize * 1.4
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
