// Package renderer draws the particle swarm with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/sim"
)

// PointCloud renders particles as alpha-blended 3D points.
type PointCloud struct {
	fieldSize float32
	alpha     uint8
}

// NewPointCloud creates a point cloud renderer for the given field extent.
func NewPointCloud(fieldSize float64) *PointCloud {
	return &PointCloud{
		fieldSize: float32(fieldSize),
		alpha:     200,
	}
}

// ToRaylibCamera converts the orbit camera to a raylib Camera3D.
func ToRaylibCamera(c *camera.Camera) rl.Camera3D {
	pos := c.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: float32(pos.X), Y: float32(pos.Y), Z: float32(pos.Z)},
		Target:     rl.Vector3{X: float32(c.Target.X), Y: float32(c.Target.Y), Z: float32(c.Target.Z)},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       50,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the swarm inside an active 3D mode.
// Positions and colors come straight from the simulation's buffers.
func (pc *PointCloud) Draw(positions []r3.Vec, colors []sim.Color) {
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range positions {
		p := positions[i]
		c := colors[i]
		rl.DrawPoint3D(
			rl.Vector3{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)},
			rl.Color{
				R: uint8(c.R * 255),
				G: uint8(c.G * 255),
				B: uint8(c.B * 255),
				A: pc.alpha,
			},
		)
	}
	rl.EndBlendMode()
}

// DrawBounds renders the field cube wireframe.
func (pc *PointCloud) DrawBounds() {
	rl.DrawCubeWiresV(
		rl.Vector3{},
		rl.Vector3{X: pc.fieldSize, Y: pc.fieldSize, Z: pc.fieldSize},
		rl.Color{R: 70, G: 80, B: 100, A: 120},
	)
}

// DrawAttractor renders the attractor cylinder wireframe.
func (pc *PointCloud) DrawAttractor(radius float64) {
	rl.DrawCylinderWires(
		rl.Vector3{X: 0, Y: -pc.fieldSize / 2, Z: 0},
		float32(radius), float32(radius), pc.fieldSize, 24,
		rl.Color{R: 120, G: 90, B: 60, A: 100},
	)
}
