package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Background renders a vertical gradient behind the 3D scene.
type Background struct {
	screenW, screenH int32
	top, bottom      rl.Color
}

// NewBackground creates the default deep-space gradient.
func NewBackground(screenW, screenH int32) *Background {
	return &Background{
		screenW: screenW,
		screenH: screenH,
		top:     rl.Color{R: 8, G: 10, B: 22, A: 255},
		bottom:  rl.Color{R: 18, G: 14, B: 34, A: 255},
	}
}

// Resize updates the gradient extent after a window resize.
func (b *Background) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw fills the frame. Call before entering 3D mode.
func (b *Background) Draw() {
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, b.top, b.bottom)
}
