package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Channel offsets decorrelate the scalar channels pulled from a single
// noise source, so one generator serves as five independent-looking fields.
const (
	offTheta1Primary   = 100.0
	offTheta1Secondary = 200.0
	offTheta2Primary   = 300.0
	offTheta2Secondary = 400.0
	offVertical        = 500.0
)

// Flow converts scalar noise into a spatially coherent direction field.
// Two blended noise channels act as spherical angles; a third channel adds
// a small vertical bias. The field is sampled on demand at exact particle
// positions, so there is no stored vector grid and no resolution limit.
type Flow struct {
	src Source

	// Per-axis noise frequencies for the primary and secondary channels.
	primary   r3.Vec
	secondary r3.Vec

	// weight blends primary against secondary samples; weights sum to 1.
	weight float64
}

// NewFlow creates a flow sampler over the given noise source.
// primaryWeight is the blend weight of the primary-scale channel in [0, 1].
func NewFlow(src Source, primary, secondary r3.Vec, primaryWeight float64) *Flow {
	return &Flow{
		src:       src,
		primary:   primary,
		secondary: secondary,
		weight:    primaryWeight,
	}
}

// SetWeight updates the primary blend weight. Only called between steps.
func (f *Flow) SetWeight(w float64) {
	f.weight = w
}

// Direction returns the unit-scale flow direction at position p and time t.
// The vertical component can exceed unit length by up to 0.5; callers scale
// by particle speed, so exact normalization is not required.
func (f *Flow) Direction(p r3.Vec, t float64) r3.Vec {
	theta := f.channel(p, t, offTheta1Primary, offTheta1Secondary) * 2 * math.Pi
	phi := f.channel(p, t, offTheta2Primary, offTheta2Secondary) * math.Pi

	zn := f.src.Sample(
		p.X*f.primary.X+offVertical,
		p.Y*f.primary.Y+offVertical,
		p.Z*f.primary.Z+offVertical+t,
	)
	zAngle := zn * math.Pi

	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)

	return r3.Vec{
		X: sinTheta * cosPhi,
		Y: sinTheta * sinPhi,
		Z: cosTheta + math.Sin(zAngle)*0.5,
	}
}

// Angles returns the two blended spherical angles at position p and time t.
// Used by the field preview tool.
func (f *Flow) Angles(p r3.Vec, t float64) (theta, phi float64) {
	theta = f.channel(p, t, offTheta1Primary, offTheta1Secondary) * 2 * math.Pi
	phi = f.channel(p, t, offTheta2Primary, offTheta2Secondary) * math.Pi
	return theta, phi
}

// channel samples one scalar channel: a primary-frequency sample blended
// with a secondary-frequency sample at the channel's offsets.
func (f *Flow) channel(p r3.Vec, t, offPrimary, offSecondary float64) float64 {
	a := f.src.Sample(
		p.X*f.primary.X+offPrimary,
		p.Y*f.primary.Y+offPrimary,
		p.Z*f.primary.Z+offPrimary+t,
	)
	b := f.src.Sample(
		p.X*f.secondary.X+offSecondary,
		p.Y*f.secondary.Y+offSecondary,
		p.Z*f.secondary.Z+offSecondary+t,
	)
	return a*f.weight + b*(1-f.weight)
}
