// Package app wires the simulation, camera, renderer and telemetry into the
// interactive and headless run loops.
package app

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/sim"
	"github.com/pthm-cable/drift/telemetry"
	"github.com/pthm-cable/drift/ui"
)

// Options holds startup options resolved from CLI flags.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// App owns the complete application state.
type App struct {
	cfg *config.Config
	sim *sim.Simulation

	cam    *camera.Camera
	points *renderer.PointCloud
	bg     *renderer.Background
	hud    *ui.HUD
	panel  *ui.TuningPanel

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	logStats       bool
	headless       bool
	stepsPerUpdate int
	statsEvery     int64 // ticks between stats windows

	paused    bool
	stepOnce  bool
	showPanel bool
}

// New creates the application. The config must already be loaded via
// config.Init.
func New(cfg *config.Config, opts Options) (*App, error) {
	simulation, err := sim.New(cfg, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		simulation.Close()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to snapshot config", "error", err)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	simulation.SetPerfCollector(perf)

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	statsEvery := int64(cfg.Telemetry.StatsWindow / cfg.Physics.DT)
	if statsEvery < 1 {
		statsEvery = 1
	}

	a := &App{
		cfg:            cfg,
		sim:            simulation,
		perf:           perf,
		output:         output,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		statsEvery:     statsEvery,
	}

	if !opts.Headless {
		a.cam = camera.New(cfg.Field.Size)
		a.points = renderer.NewPointCloud(cfg.Field.Size)
		a.bg = renderer.NewBackground(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
		a.hud = ui.NewHUD()
		a.panel = ui.NewTuningPanel(int32(cfg.Screen.Width))
	}

	return a, nil
}

// Update advances the simulation one frame in graphical mode.
func (a *App) Update() {
	a.handleInput()

	if a.paused && !a.stepOnce {
		a.perf.RecordFrame()
		return
	}
	a.stepOnce = false

	a.step()
	a.perf.RecordFrame()
}

// UpdateHeadless advances the simulation without graphics.
func (a *App) UpdateHeadless() {
	for i := 0; i < a.stepsPerUpdate; i++ {
		a.step()
	}
}

// step runs one simulation tick with perf timing and window stats.
func (a *App) step() {
	a.perf.StartTick()
	a.sim.Step(a.cfg.Physics.DT)

	a.perf.StartPhase(telemetry.PhaseTelemetry)
	if a.sim.Tick()%a.statsEvery == 0 {
		a.emitStats()
	}
	a.perf.EndTick()
}

// emitStats computes window statistics and writes them to the configured
// sinks.
func (a *App) emitStats() {
	tick := a.sim.Tick()
	stats := telemetry.ComputeWindowStats(
		tick,
		float64(tick)*a.cfg.Physics.DT,
		a.sim.Positions(),
		a.sim.Grid().CellCount(),
	)
	perfStats := a.perf.Stats()

	if a.logStats {
		slog.Info("stats", "window", stats, "perf", perfStats)
	}
	if err := a.output.WriteTelemetry(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
	if err := a.output.WritePerf(perfStats, tick); err != nil {
		slog.Warn("perf write failed", "error", err)
	}
}

// Draw renders one frame. Graphical mode only.
func (a *App) Draw() {
	rl.BeginDrawing()

	a.bg.Draw()

	rl.BeginMode3D(renderer.ToRaylibCamera(a.cam))
	a.points.DrawBounds()
	if a.sim.AttractorEnabled() {
		a.points.DrawAttractor(a.cfg.Attractor.Radius)
	}
	a.points.Draw(a.sim.Positions(), a.sim.Colors())
	rl.EndMode3D()

	a.hud.Draw(ui.HUDData{
		Title:     "Drift",
		Particles: a.sim.Count(),
		Tick:      a.sim.Tick(),
		FPS:       rl.GetFPS(),
		TickUS:    a.perf.Stats().AvgTickDuration.Microseconds(),
		Paused:    a.paused,
		Basis:     a.cfg.Field.Basis,
	})
	a.hud.DrawControls(int32(a.cfg.Screen.Height))

	if a.showPanel {
		a.applyTuning(a.panel.Draw(a.currentTuning()))
	}

	rl.EndDrawing()
}

// currentTuning snapshots the hot-tunable parameters for the panel.
func (a *App) currentTuning() ui.Tuning {
	return ui.Tuning{
		Speed:          float32(a.sim.Speed()),
		RepulsionForce: float32(a.sim.RepulsionForce()),
		AttractorForce: float32(a.cfg.Attractor.Force),
		PrimaryWeight:  float32(a.cfg.Field.PrimaryWeight),
		HasAttractor:   a.sim.AttractorEnabled(),
	}
}

// applyTuning pushes panel edits into the simulation between steps.
func (a *App) applyTuning(t ui.Tuning) {
	a.sim.SetSpeed(float64(t.Speed))
	a.sim.SetRepulsionForce(float64(t.RepulsionForce))
	a.sim.SetPrimaryWeight(float64(t.PrimaryWeight))
	a.cfg.Field.PrimaryWeight = float64(t.PrimaryWeight)
	if t.HasAttractor {
		a.sim.SetAttractorForce(float64(t.AttractorForce))
		a.cfg.Attractor.Force = float64(t.AttractorForce)
	}
}

// Tick returns the number of completed simulation steps.
func (a *App) Tick() int64 {
	return a.sim.Tick()
}

// Unload releases simulation workers and output files.
func (a *App) Unload() {
	a.sim.Close()
	if err := a.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
}
