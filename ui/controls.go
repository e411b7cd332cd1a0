package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the hot-tunable simulation parameters edited by the panel.
// The app applies changed values to the simulation between steps.
type Tuning struct {
	Speed          float32
	RepulsionForce float32
	AttractorForce float32
	PrimaryWeight  float32

	HasAttractor bool
}

// TuningPanel draws sliders for live parameter adjustment.
type TuningPanel struct {
	x, y  float32
	width float32
}

// NewTuningPanel creates a panel anchored at the top-right of the screen.
func NewTuningPanel(screenW int32) *TuningPanel {
	const width = 260
	return &TuningPanel{
		x:     float32(screenW) - width - 10,
		y:     10,
		width: width,
	}
}

// Draw renders the panel and returns the (possibly modified) tuning values.
func (p *TuningPanel) Draw(t Tuning) Tuning {
	x, y := p.x, p.y
	sliderW := p.width - 60

	rows := 3
	if t.HasAttractor {
		rows = 4
	}
	rl.DrawRectangle(int32(x-10), int32(y-10), int32(p.width+20), int32(rows*46+30), rl.Color{R: 10, G: 12, B: 20, A: 200})
	rl.DrawText("Tuning", int32(x), int32(y), 18, rl.White)
	y += 28

	t.Speed = p.slider(&y, x, sliderW, "speed", t.Speed, 0, 10)
	t.RepulsionForce = p.slider(&y, x, sliderW, "repulsion", t.RepulsionForce, 0, 5)
	t.PrimaryWeight = p.slider(&y, x, sliderW, "blend", t.PrimaryWeight, 0, 1)
	if t.HasAttractor {
		t.AttractorForce = p.slider(&y, x, sliderW, "attractor", t.AttractorForce, 0, 10)
	}

	return t
}

// slider draws one labeled slider row and advances the y cursor.
func (p *TuningPanel) slider(y *float32, x, width float32, label string, value, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18

	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: width, Height: 20},
		"", "", value, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.2f", v), int32(x+width+8), int32(*y+2), 16, rl.LightGray)
	*y += 28

	return v
}
