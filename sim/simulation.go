package sim

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/field"
	"github.com/pthm-cable/drift/telemetry"
)

// timePeriod bounds the noise time coordinate. Unbounded time would slowly
// lose float precision and distort noise continuity over very long sessions;
// wrapping costs one single-frame seam roughly every 12 days at the default
// time scale.
const timePeriod = 1 << 20

// intent holds one particle's computed post-step state. Workers write only
// their own slots during the force phase; the apply phase commits them, so
// force computation always reads the pre-step snapshot.
type intent struct {
	pos   r3.Vec
	color Color
}

// Simulation owns the particle swarm and advances it one step per frame.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	flow      *field.Flow
	grid      *SpatialGrid
	attractor *CylinderAttractor // nil when disabled

	positions []r3.Vec
	colors    []Color
	intents   []intent

	parallel *parallelState
	perf     *telemetry.PerfCollector // optional

	half float64
	time float64 // scaled noise time, wrapped modulo timePeriod
	tick int64

	// Hot-tunable parameters; written only between steps.
	speed          float64
	repulsionForce float64
	timeDrift      float64
}

// New creates a simulation from a validated config and a seed.
// All randomness (noise table shuffle, initial positions) flows from the
// single seeded RNG; no process-wide random state is touched.
func New(cfg *config.Config, seed int64) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))

	var src field.Source
	switch cfg.Field.Basis {
	case config.BasisPerlin:
		src = field.NewPerlin(rng)
	case config.BasisSimplex:
		src = field.NewSimplex(seed)
	default:
		return nil, fmt.Errorf("sim: unknown noise basis %q", cfg.Field.Basis)
	}

	flow := field.NewFlow(src,
		r3.Vec{X: cfg.Field.PrimaryScale.X, Y: cfg.Field.PrimaryScale.Y, Z: cfg.Field.PrimaryScale.Z},
		r3.Vec{X: cfg.Field.SecondaryScale.X, Y: cfg.Field.SecondaryScale.Y, Z: cfg.Field.SecondaryScale.Z},
		cfg.Field.PrimaryWeight,
	)

	s := &Simulation{
		cfg:            cfg,
		rng:            rng,
		flow:           flow,
		grid:           NewSpatialGrid(cfg.Repulsion.CellSize),
		half:           cfg.Field.Size / 2,
		speed:          cfg.Particles.Speed,
		repulsionForce: cfg.Repulsion.Force,
		timeDrift:      cfg.Color.TimeDrift,
		parallel:       newParallelState(),
	}

	if cfg.Attractor.Enabled {
		s.attractor = &CylinderAttractor{
			Radius:          cfg.Attractor.Radius,
			Force:           cfg.Attractor.Force,
			InfluenceRadius: cfg.Attractor.InfluenceRadius,
			FalloffExponent: cfg.Attractor.FalloffExponent,
		}
	}

	n := cfg.Particles.Count
	s.positions = make([]r3.Vec, n)
	s.colors = make([]Color, n)
	s.intents = make([]intent, n)

	for i := range s.positions {
		s.positions[i] = r3.Vec{
			X: rng.Float64()*cfg.Field.Size - s.half,
			Y: rng.Float64()*cfg.Field.Size - s.half,
			Z: rng.Float64()*cfg.Field.Size - s.half,
		}
		s.colors[i] = deriveColor(s.positions[i], s.half, 0, s.timeDrift)
	}

	return s, nil
}

// SetPerfCollector attaches an optional per-phase timing collector.
func (s *Simulation) SetPerfCollector(pc *telemetry.PerfCollector) {
	s.perf = pc
}

// Step advances the simulation by dt seconds.
//
// Pipeline: rebuild the spatial index from pre-step positions, compute each
// particle's forces and next state into the intents buffer (parallel over a
// read-only grid and noise field), then commit all intents. Positions and
// colors are stable between calls; the renderer reads them after each step.
func (s *Simulation) Step(dt float64) {
	s.time = math.Mod(s.time+dt*s.cfg.Field.TimeScale, timePeriod)
	s.tick++

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseSpatialGrid)
	}
	s.grid.Rebuild(s.positions)

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseForces)
	}
	n := len(s.positions)
	if n < parallelThreshold {
		s.computeChunk(0, n, &s.parallel.scratches[0], dt)
	} else {
		s.computeParallel(n, dt)
	}

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseApply)
	}
	for i := range s.intents {
		s.positions[i] = s.intents[i].pos
		s.colors[i] = s.intents[i].color
	}
}

// computeChunk processes particles [i0, i1): force composition, Euler
// integration, boundary wrap and color derivation. Reads only pre-step
// state; writes only its own intent slots.
func (s *Simulation) computeChunk(i0, i1 int, scratch *workerScratch, dt float64) {
	radius := s.cfg.Repulsion.Radius

	for i := i0; i < i1; i++ {
		p := s.positions[i]

		// Flow field velocity
		vel := r3.Scale(s.speed, s.flow.Direction(p, s.time))

		// Neighbor repulsion
		scratch.neighbors = s.grid.QueryInto(scratch.neighbors[:0], int32(i), p, radius, s.positions)
		for _, nb := range scratch.neighbors {
			dist := math.Sqrt(nb.DistSq)
			mag := RepulsionAt(dist, radius, s.repulsionForce)
			vel = r3.Add(vel, r3.Scale(mag/dist, nb.Delta))
		}

		// Cylindrical attractor
		if s.attractor != nil {
			vel = r3.Add(vel, s.attractor.ForceAt(p))
		}

		np := r3.Add(p, r3.Scale(dt, vel))
		np.X = wrapCoord(np.X, s.half)
		np.Y = wrapCoord(np.Y, s.half)
		np.Z = wrapCoord(np.Z, s.half)

		s.intents[i] = intent{
			pos:   np,
			color: deriveColor(np, s.half, s.time, s.timeDrift),
		}
	}
}

// RepulsionAt returns the repulsion force magnitude at the given distance:
// linear falloff from force at dist=0 to exactly zero at dist=radius, so
// there is no force discontinuity at the cutoff.
func RepulsionAt(dist, radius, force float64) float64 {
	if dist <= 0 || dist >= radius {
		return 0
	}
	return (1 - dist/radius) * force
}

// wrapCoord applies the toroidal boundary: overshoot past +half re-enters at
// -half plus the overshoot, symmetric on the negative side. Forces are
// magnitude-bounded so overshoot stays well under the field size; the Mod
// fallback keeps even a pathological config in range.
func wrapCoord(v, half float64) float64 {
	size := 2 * half
	if v > half {
		v -= size
	} else if v < -half {
		v += size
	}
	if v > half || v < -half {
		v = math.Mod(v+half, size)
		if v < 0 {
			v += size
		}
		v -= half
	}
	return v
}

// Positions returns the particle positions. Owned by the simulation; valid
// until the next Step call.
func (s *Simulation) Positions() []r3.Vec { return s.positions }

// Colors returns the particle colors. Owned by the simulation; valid until
// the next Step call.
func (s *Simulation) Colors() []Color { return s.colors }

// Count returns the number of particles.
func (s *Simulation) Count() int { return len(s.positions) }

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int64 { return s.tick }

// Time returns the current (wrapped) noise time coordinate.
func (s *Simulation) Time() float64 { return s.time }

// Grid exposes the spatial index for telemetry.
func (s *Simulation) Grid() *SpatialGrid { return s.grid }

// SetSpeed updates the flow speed. Call only between steps.
func (s *Simulation) SetSpeed(v float64) { s.speed = v }

// Speed returns the current flow speed.
func (s *Simulation) Speed() float64 { return s.speed }

// SetRepulsionForce updates the peak repulsion force. Call only between steps.
func (s *Simulation) SetRepulsionForce(v float64) { s.repulsionForce = v }

// RepulsionForce returns the current peak repulsion force.
func (s *Simulation) RepulsionForce() float64 { return s.repulsionForce }

// SetPrimaryWeight updates the noise blend weight. Call only between steps.
func (s *Simulation) SetPrimaryWeight(w float64) { s.flow.SetWeight(w) }

// SetAttractorForce updates the attractor force if the attractor is enabled.
// Call only between steps.
func (s *Simulation) SetAttractorForce(v float64) {
	if s.attractor != nil {
		s.attractor.Force = v
	}
}

// AttractorEnabled reports whether the cylindrical attractor is active.
func (s *Simulation) AttractorEnabled() bool { return s.attractor != nil }

// Close stops the worker pool. The simulation must not be stepped after.
func (s *Simulation) Close() {
	s.parallel.stopWorkers()
}
