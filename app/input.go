package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input sensitivity constants.
const (
	orbitSpeed = 0.005 // radians per pixel of mouse drag
	zoomSpeed  = 0.92  // distance multiplier per wheel notch
)

// handleInput processes camera and simulation controls.
func (a *App) handleInput() {
	// Camera orbit with left mouse drag
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		a.cam.Orbit(float64(delta.X)*orbitSpeed, float64(delta.Y)*orbitSpeed)
	}

	// Zoom with mouse wheel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := zoomSpeed
		if wheel < 0 {
			factor = 1 / zoomSpeed
		}
		a.cam.Dolly(factor)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && a.paused {
		a.stepOnce = true
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.showPanel = !a.showPanel
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.cam.Reset(a.cfg.Field.Size)
	}
}
