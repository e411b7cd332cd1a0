package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Field.Size <= 0 {
		t.Errorf("default field.size = %v, want > 0", cfg.Field.Size)
	}
	if cfg.Repulsion.CellSize < cfg.Repulsion.Radius {
		t.Errorf("default cell_size (%v) < radius (%v)", cfg.Repulsion.CellSize, cfg.Repulsion.Radius)
	}
	if cfg.Derived.HalfSize != cfg.Field.Size/2 {
		t.Errorf("Derived.HalfSize = %v, want %v", cfg.Derived.HalfSize, cfg.Field.Size/2)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "particles:\n  count: 123\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.Particles.Count != 123 {
		t.Errorf("particles.count = %d, want 123 (overlay)", cfg.Particles.Count)
	}
	// Untouched fields keep defaults
	if cfg.Field.Basis != BasisPerlin {
		t.Errorf("field.basis = %q, want default %q", cfg.Field.Basis, BasisPerlin)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load(\"\") failed: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"zero dt", func(c *Config) { c.Physics.DT = 0 }, "physics.dt"},
		{"zero field size", func(c *Config) { c.Field.Size = 0 }, "field.size"},
		{"negative field size", func(c *Config) { c.Field.Size = -10 }, "field.size"},
		{"unknown basis", func(c *Config) { c.Field.Basis = "value" }, "field.basis"},
		{"weight above one", func(c *Config) { c.Field.PrimaryWeight = 1.5 }, "primary_weight"},
		{"negative count", func(c *Config) { c.Particles.Count = -1 }, "particles.count"},
		{"zero repulsion radius", func(c *Config) { c.Repulsion.Radius = 0 }, "repulsion.radius"},
		{"cell smaller than radius", func(c *Config) { c.Repulsion.CellSize = c.Repulsion.Radius / 2 }, "cell_size"},
		{"attractor bad influence", func(c *Config) {
			c.Attractor.Enabled = true
			c.Attractor.InfluenceRadius = 0
		}, "influence_radius"},
		{"attractor bad falloff", func(c *Config) {
			c.Attractor.Enabled = true
			c.Attractor.FalloffExponent = 0
		}, "falloff_exponent"},
		{"disabled attractor skips checks", func(c *Config) {
			c.Attractor.Enabled = false
			c.Attractor.InfluenceRadius = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Particles.Count = 77

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(snapshot) failed: %v", err)
	}
	if loaded.Particles.Count != 77 {
		t.Errorf("round-tripped particles.count = %d, want 77", loaded.Particles.Count)
	}
}
