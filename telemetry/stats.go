package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated swarm statistics for a time window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	Particles     int `csv:"particles"`
	OccupiedCells int `csv:"occupied_cells"`

	// Spatial spread per axis (stddev of positions)
	SpreadX float64 `csv:"spread_x"`
	SpreadY float64 `csv:"spread_y"`
	SpreadZ float64 `csv:"spread_z"`

	// Radial distance from the Y axis (the attractor axis)
	RadialMean float64 `csv:"radial_mean"`
	RadialP10  float64 `csv:"radial_p10"`
	RadialP50  float64 `csv:"radial_p50"`
	RadialP90  float64 `csv:"radial_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation between closest ranks
	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// ComputeWindowStats aggregates swarm statistics from current positions.
func ComputeWindowStats(tick int64, simTime float64, positions []r3.Vec, occupiedCells int) WindowStats {
	ws := WindowStats{
		WindowEndTick: tick,
		SimTimeSec:    simTime,
		Particles:     len(positions),
		OccupiedCells: occupiedCells,
	}
	if len(positions) == 0 {
		return ws
	}

	xs := make([]float64, len(positions))
	ys := make([]float64, len(positions))
	zs := make([]float64, len(positions))
	radial := make([]float64, len(positions))
	for i, p := range positions {
		xs[i] = p.X
		ys[i] = p.Y
		zs[i] = p.Z
		radial[i] = math.Hypot(p.X, p.Z)
	}

	ws.SpreadX = stat.StdDev(xs, nil)
	ws.SpreadY = stat.StdDev(ys, nil)
	ws.SpreadZ = stat.StdDev(zs, nil)

	ws.RadialMean = stat.Mean(radial, nil)
	sort.Float64s(radial)
	ws.RadialP10 = Percentile(radial, 0.1)
	ws.RadialP50 = Percentile(radial, 0.5)
	ws.RadialP90 = Percentile(radial, 0.9)

	return ws
}

// LogValue implements slog.LogValuer for structured logging.
func (ws WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", ws.WindowEndTick),
		slog.Float64("sim_time", ws.SimTimeSec),
		slog.Int("particles", ws.Particles),
		slog.Int("occupied_cells", ws.OccupiedCells),
		slog.Float64("spread_x", ws.SpreadX),
		slog.Float64("spread_y", ws.SpreadY),
		slog.Float64("spread_z", ws.SpreadZ),
		slog.Float64("radial_mean", ws.RadialMean),
	)
}
