package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Palette phase offsets spread the three channels around the hue circle.
const (
	phaseG = 2.094 // 2π/3
	phaseB = 4.189 // 4π/3
)

// deriveColor maps a wrapped position (and elapsed time) to a color.
// Pure function: sinusoidal ramps over normalized coordinates give smooth
// spatial gradients that wrap cleanly at the field boundary.
func deriveColor(p r3.Vec, half, t, timeDrift float64) Color {
	inv := math.Pi / half
	drift := t * timeDrift

	r := 0.5 + 0.5*math.Sin(p.X*inv+drift)
	g := 0.5 + 0.5*math.Sin(p.Y*inv+drift+phaseG)
	b := 0.5 + 0.5*math.Sin(p.Z*inv+drift+phaseB)

	return Color{R: float32(r), G: float32(g), B: float32(b)}
}
