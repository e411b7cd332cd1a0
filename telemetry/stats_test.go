package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeWindowStats(t *testing.T) {
	positions := []r3.Vec{
		{X: 3, Y: 0, Z: 4},  // radial 5
		{X: -3, Y: 2, Z: 4}, // radial 5
		{X: 0, Y: -2, Z: 5}, // radial 5
	}

	ws := ComputeWindowStats(42, 1.5, positions, 3)

	if ws.WindowEndTick != 42 || ws.SimTimeSec != 1.5 {
		t.Errorf("window metadata = (%d, %v), want (42, 1.5)", ws.WindowEndTick, ws.SimTimeSec)
	}
	if ws.Particles != 3 || ws.OccupiedCells != 3 {
		t.Errorf("counts = (%d, %d), want (3, 3)", ws.Particles, ws.OccupiedCells)
	}
	if math.Abs(ws.RadialMean-5) > 1e-9 {
		t.Errorf("RadialMean = %v, want 5", ws.RadialMean)
	}
	if math.Abs(ws.RadialP50-5) > 1e-9 {
		t.Errorf("RadialP50 = %v, want 5", ws.RadialP50)
	}
	// Y values are {0, 2, -2}: stddev = 2
	if math.Abs(ws.SpreadY-2) > 1e-9 {
		t.Errorf("SpreadY = %v, want 2", ws.SpreadY)
	}
}

func TestComputeWindowStatsEmpty(t *testing.T) {
	ws := ComputeWindowStats(0, 0, nil, 0)
	if ws.Particles != 0 || ws.RadialMean != 0 || ws.SpreadX != 0 {
		t.Errorf("empty stats = %+v, want zero values", ws)
	}
}
