// Flow field preview tool - interactive slice visualization with sliders.
//
// Renders a horizontal slice (y = const) of the flow field as a color map:
// hue follows the in-plane heading, brightness follows the polar angle.
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/field"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	gridSize  = 256
	fieldSize = 60.0
)

// FlowParams holds the tunable flow-field parameters.
type FlowParams struct {
	PrimaryScale   float32
	SecondaryScale float32
	PrimaryWeight  float32
	TimeScale      float32
	SliceY         float32
	Seed           int64
	UseSimplex     bool
}

func defaultParams() FlowParams {
	return FlowParams{
		PrimaryScale:   0.02,
		SecondaryScale: 0.09,
		PrimaryWeight:  0.75,
		TimeScale:      0.04,
		SliceY:         0,
		Seed:           12345,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	flow := buildFlow(params)

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	pixels := make([]color.RGBA, gridSize*gridSize)

	var time float32 = 0
	animating := false

	renderSlice(pixels, flow, params, time)
	rl.UpdateTexture(texture, pixels)

	needsRegen := false
	needsRebuild := false

	for !rl.WindowShouldClose() {
		if animating {
			time += rl.GetFrameTime()
			needsRegen = true
		}

		if needsRebuild {
			flow = buildFlow(params)
			needsRebuild = false
			needsRegen = true
		}
		if needsRegen {
			renderSlice(pixels, flow, params, time)
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText("Hue = heading, brightness = polar angle", 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.1f  Slice y: %.1f", time, params.SliceY), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Primary scale slider
		rl.DrawText("Primary scale (large structure frequency)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newPrimary := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.005", "0.1",
			params.PrimaryScale, 0.005, 0.1,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.PrimaryScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newPrimary != params.PrimaryScale {
			params.PrimaryScale = newPrimary
			needsRebuild = true
		}
		panelY += 35

		// Secondary scale slider
		rl.DrawText("Secondary scale (detail frequency)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSecondary := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.01", "0.3",
			params.SecondaryScale, 0.01, 0.3,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.SecondaryScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newSecondary != params.SecondaryScale {
			params.SecondaryScale = newSecondary
			needsRebuild = true
		}
		panelY += 35

		// Blend weight slider
		rl.DrawText("Primary weight (blend toward large structure)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newWeight := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1",
			params.PrimaryWeight, 0, 1,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.PrimaryWeight), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newWeight != params.PrimaryWeight {
			params.PrimaryWeight = newWeight
			flow.SetWeight(float64(newWeight))
			needsRegen = true
		}
		panelY += 35

		// Time scale slider
		rl.DrawText("Time scale (field evolution speed)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTimeScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.2",
			params.TimeScale, 0, 0.2,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.TimeScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newTimeScale != params.TimeScale {
			params.TimeScale = newTimeScale
		}
		panelY += 35

		// Slice height slider
		rl.DrawText("Slice y (height of the sampled plane)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSliceY := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-30", "30",
			params.SliceY, -fieldSize/2, fieldSize/2,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.SliceY), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newSliceY != params.SliceY {
			params.SliceY = newSliceY
			needsRegen = true
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRebuild = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			time = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.UseSimplex, "Simplex", "Perlin")) {
			params.UseSimplex = !params.UseSimplex
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRebuild = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			time = 0
			needsRebuild = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func yamlLines(params FlowParams) []string {
	basis := "perlin"
	if params.UseSimplex {
		basis = "simplex"
	}
	s := func(v float32) string { return fmt.Sprintf("{x: %.3f, y: %.3f, z: %.3f}", v, v, v) }
	return []string{
		"field:",
		fmt.Sprintf("  basis: %s", basis),
		fmt.Sprintf("  primary_scale: %s", s(params.PrimaryScale)),
		fmt.Sprintf("  secondary_scale: %s", s(params.SecondaryScale)),
		fmt.Sprintf("  primary_weight: %.2f", params.PrimaryWeight),
		fmt.Sprintf("  time_scale: %.3f", params.TimeScale),
	}
}

// buildFlow constructs a flow sampler from the current slider state.
func buildFlow(params FlowParams) *field.Flow {
	var src field.Source
	if params.UseSimplex {
		src = field.NewSimplex(params.Seed)
	} else {
		src = field.NewPerlin(rand.New(rand.NewSource(params.Seed)))
	}
	primary := r3.Vec{X: float64(params.PrimaryScale), Y: float64(params.PrimaryScale), Z: float64(params.PrimaryScale)}
	secondary := r3.Vec{X: float64(params.SecondaryScale), Y: float64(params.SecondaryScale), Z: float64(params.SecondaryScale)}
	return field.NewFlow(src, primary, secondary, float64(params.PrimaryWeight))
}

// renderSlice samples the field on an x/z plane and maps the angles to color.
func renderSlice(pixels []color.RGBA, flow *field.Flow, params FlowParams, time float32) {
	t := float64(time) * float64(params.TimeScale)
	y := float64(params.SliceY)

	for row := 0; row < gridSize; row++ {
		z := (float64(row)/float64(gridSize) - 0.5) * fieldSize
		for col := 0; col < gridSize; col++ {
			x := (float64(col)/float64(gridSize) - 0.5) * fieldSize

			theta, phi := flow.Angles(r3.Vec{X: x, Y: y, Z: z}, t)
			pixels[row*gridSize+col] = angleColor(theta, phi)
		}
	}
}

// angleColor maps heading to hue and polar angle to brightness.
func angleColor(theta, phi float64) color.RGBA {
	// Normalize: theta spans [0, 2π) as hue, phi spans [0, π] as value.
	hue := math.Mod(theta/(2*math.Pi)+1, 1)
	value := 0.35 + 0.65*math.Abs(math.Sin(phi))

	r, g, b := hsv(hue, 0.8, value)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// hsv converts hue/saturation/value in [0,1] to 8-bit RGB.
func hsv(h, s, v float64) (uint8, uint8, uint8) {
	i := int(h*6) % 6
	f := h*6 - math.Floor(h*6)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(r * 255), uint8(g * 255), uint8(b * 255)
}
