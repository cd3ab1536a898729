package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Pool.Capacity <= 0 {
		t.Errorf("pool capacity = %d, want > 0", cfg.Pool.Capacity)
	}
	if cfg.Spawn.MinSpeed >= cfg.Spawn.MaxSpeed {
		t.Errorf("speed range inverted: [%v, %v]", cfg.Spawn.MinSpeed, cfg.Spawn.MaxSpeed)
	}
	if len(cfg.Comet.Palette) == 0 {
		t.Error("empty palette")
	}
	if cfg.Integration.MaxDT <= 0 {
		t.Errorf("max_dt = %v, want > 0", cfg.Integration.MaxDT)
	}
}

func TestLoadComputesDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	wantFOV := float32(cfg.Space.FOVDegrees * math.Pi / 180)
	if math.Abs(float64(cfg.Derived.FOVRadians-wantFOV)) > 1e-6 {
		t.Errorf("fov radians = %v, want %v", cfg.Derived.FOVRadians, wantFOV)
	}

	if len(cfg.Derived.Palette) != len(cfg.Comet.Palette) {
		t.Fatalf("derived palette has %d colors, want %d",
			len(cfg.Derived.Palette), len(cfg.Comet.Palette))
	}
	for i, c := range cfg.Derived.Palette {
		for j, v := range c {
			if math.Abs(float64(v)-cfg.Comet.Palette[i][j]) > 1e-6 {
				t.Errorf("derived palette[%d][%d] = %v, want %v",
					i, j, v, cfg.Comet.Palette[i][j])
			}
		}
	}
}

func TestLoadMergesUserConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	override := "pool:\n  capacity: 32\nspawn:\n  max_group: 1\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading merged config: %v", err)
	}

	if cfg.Pool.Capacity != 32 {
		t.Errorf("capacity = %d, want 32 from override", cfg.Pool.Capacity)
	}
	if cfg.Spawn.MaxGroup != 1 {
		t.Errorf("max_group = %d, want 1 from override", cfg.Spawn.MaxGroup)
	}

	// Untouched sections keep their defaults.
	if cfg.Comet.MaxLifetime != 60 {
		t.Errorf("max_lifetime = %v, want default 60", cfg.Comet.MaxLifetime)
	}
}

func TestLoadRejectsBadPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	bad := "comet:\n  palette:\n    - [1.0, 0.5]\n"
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for palette color with 2 channels")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written yaml: %v", err)
	}

	if back.Pool.Capacity != cfg.Pool.Capacity {
		t.Errorf("capacity round trip: %d -> %d", cfg.Pool.Capacity, back.Pool.Capacity)
	}
	if back.Spawn.MaxSpeed != cfg.Spawn.MaxSpeed {
		t.Errorf("max_speed round trip: %v -> %v", cfg.Spawn.MaxSpeed, back.Spawn.MaxSpeed)
	}
}
