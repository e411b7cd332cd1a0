// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Noise basis names accepted by Field.Basis.
const (
	BasisPerlin  = "perlin"
	BasisSimplex = "simplex"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Field     FieldConfig     `yaml:"field"`
	Particles ParticlesConfig `yaml:"particles"`
	Repulsion RepulsionConfig `yaml:"repulsion"`
	Attractor AttractorConfig `yaml:"attractor"`
	Color     ColorConfig     `yaml:"color"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Seconds per simulation tick
}

// Vec3Config is a per-axis value triple.
type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// FieldConfig holds flow-field parameters.
type FieldConfig struct {
	Size           float64    `yaml:"size"`            // Full cube extent; particles live in [-size/2, size/2]
	Basis          string     `yaml:"basis"`           // Noise basis: "perlin" or "simplex"
	PrimaryScale   Vec3Config `yaml:"primary_scale"`   // Per-axis noise frequency, primary channel
	SecondaryScale Vec3Config `yaml:"secondary_scale"` // Per-axis noise frequency, secondary channel
	PrimaryWeight  float64    `yaml:"primary_weight"`  // Blend weight of primary channel in [0, 1]
	TimeScale      float64    `yaml:"time_scale"`      // Noise time units per wall second (0 = static field)
}

// ParticlesConfig holds particle swarm parameters.
type ParticlesConfig struct {
	Count int     `yaml:"count"`
	Speed float64 `yaml:"speed"` // Flow speed in world units per second
}

// RepulsionConfig holds neighbor repulsion parameters.
type RepulsionConfig struct {
	Radius   float64 `yaml:"radius"`    // Interaction cutoff distance
	Force    float64 `yaml:"force"`     // Peak repulsion in world units per second
	CellSize float64 `yaml:"cell_size"` // Spatial hash cell size; must be >= radius for exact queries
}

// AttractorConfig holds cylindrical attractor parameters.
type AttractorConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Radius          float64 `yaml:"radius"`           // Target cylinder radius
	Force           float64 `yaml:"force"`            // Restoring force scale in world units per second
	InfluenceRadius float64 `yaml:"influence_radius"` // Distance from the shell at which the force reaches zero
	FalloffExponent float64 `yaml:"falloff_exponent"` // Shape of the influence falloff
}

// ColorConfig holds color derivation parameters.
type ColorConfig struct {
	TimeDrift float64 `yaml:"time_drift"` // Hue drift rate over elapsed time (0 = static palette)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds between stats outputs
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks in the rolling perf window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HalfSize  float64 // Field.Size / 2
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks configuration invariants. Violations are construction-time
// fatal errors, not per-frame failures.
func (c *Config) Validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("config: physics.dt must be > 0, got %v", c.Physics.DT)
	}
	if c.Field.Size <= 0 {
		return fmt.Errorf("config: field.size must be > 0, got %v", c.Field.Size)
	}
	if c.Field.Basis != BasisPerlin && c.Field.Basis != BasisSimplex {
		return fmt.Errorf("config: field.basis must be %q or %q, got %q", BasisPerlin, BasisSimplex, c.Field.Basis)
	}
	if c.Field.PrimaryWeight < 0 || c.Field.PrimaryWeight > 1 {
		return fmt.Errorf("config: field.primary_weight must be in [0, 1], got %v", c.Field.PrimaryWeight)
	}
	if c.Particles.Count < 0 {
		return fmt.Errorf("config: particles.count must be >= 0, got %d", c.Particles.Count)
	}
	if c.Repulsion.Radius <= 0 {
		return fmt.Errorf("config: repulsion.radius must be > 0, got %v", c.Repulsion.Radius)
	}
	if c.Repulsion.CellSize < c.Repulsion.Radius {
		return fmt.Errorf("config: repulsion.cell_size (%v) must be >= repulsion.radius (%v) for exact neighbor queries",
			c.Repulsion.CellSize, c.Repulsion.Radius)
	}
	if c.Attractor.Enabled {
		if c.Attractor.InfluenceRadius <= 0 {
			return fmt.Errorf("config: attractor.influence_radius must be > 0 when enabled, got %v", c.Attractor.InfluenceRadius)
		}
		if c.Attractor.FalloffExponent <= 0 {
			return fmt.Errorf("config: attractor.falloff_exponent must be > 0 when enabled, got %v", c.Attractor.FalloffExponent)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HalfSize = c.Field.Size / 2
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
