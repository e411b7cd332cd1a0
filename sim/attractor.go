package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CylinderAttractor pulls particles toward the surface of a cylinder around
// the Y axis. Stateless: the force is a pure function of position.
type CylinderAttractor struct {
	Radius          float64 // Target shell radius
	Force           float64 // Restoring force scale
	InfluenceRadius float64 // Distance from the shell at which the force reaches zero
	FalloffExponent float64 // Shape of the falloff between shell and influence edge
}

// ForceAt returns the attractor force at position p.
// The force acts radially in the XZ plane, toward the shell, with magnitude
// force * (d/influence) * max(0, 1 - d/influence)^exponent where d is the
// distance from the shell. The linear term makes the restoring force vanish
// at the target radius, so there is no sign-flip discontinuity crossing the
// shell; the falloff term takes it back to zero at the influence edge.
func (a *CylinderAttractor) ForceAt(p r3.Vec) r3.Vec {
	radial := math.Hypot(p.X, p.Z)
	if radial == 0 {
		// On the axis the radial direction is undefined; no force.
		return r3.Vec{}
	}

	// Signed shell offset: positive inside (push outward), negative outside
	// (pull inward), zero on the shell.
	offset := (a.Radius - radial) / a.InfluenceRadius

	falloff := 1 - math.Abs(offset)
	if falloff <= 0 {
		return r3.Vec{}
	}
	mag := a.Force * math.Pow(falloff, a.FalloffExponent) * offset

	// Unit radial direction in XZ.
	inv := 1 / radial
	return r3.Vec{X: p.X * inv * mag, Z: p.Z * inv * mag}
}
