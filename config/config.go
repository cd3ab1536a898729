// Package config provides configuration loading and access for the
// simulation and its host viewer.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Space       SpaceConfig       `yaml:"space"`
	Pool        PoolConfig        `yaml:"pool"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Comet       CometConfig       `yaml:"comet"`
	Integration IntegrationConfig `yaml:"integration"`
	Cull        CullConfig        `yaml:"cull"`
	Particles   ParticlesConfig   `yaml:"particles"`
	Hypercube   HypercubeConfig   `yaml:"hypercube"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds viewer display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SpaceConfig holds the viewing volume parameters. ViewportSizePercent
// and FOVDegrees are defaults; hosts override them per instance at
// creation time.
type SpaceConfig struct {
	HalfExtent          float64 `yaml:"half_extent"`           // space spans ±this on every axis
	ViewportSizePercent float64 `yaml:"viewport_size_percent"` // viewport fraction of the space, in percent
	FOVDegrees          float64 `yaml:"fov_degrees"`
	ObserverZ           float64 `yaml:"observer_z"` // camera depth, matches the host scene camera
}

// PoolConfig holds object pool parameters.
type PoolConfig struct {
	Capacity int `yaml:"capacity"` // maximum live objects per instance
}

// SpawnConfig holds spawn scheduling parameters.
type SpawnConfig struct {
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MaxGroup    int     `yaml:"max_group"`     // max objects admitted with the same delay
	MinGroupGap float64 `yaml:"min_group_gap"` // seconds between stagger groups
	MaxGroupGap float64 `yaml:"max_group_gap"`

	// MinPopulation triggers self-replenishment when live+pending drops
	// below it; 0 disables.
	MinPopulation     int     `yaml:"min_population"`
	ReplenishMax      int     `yaml:"replenish_max"` // batch size cap for self-replenishment
	ReplenishMinDelay float64 `yaml:"replenish_min_delay"`
	ReplenishMaxDelay float64 `yaml:"replenish_max_delay"`
}

// CometConfig holds per-object visual parameter ranges sampled at spawn.
type CometConfig struct {
	MinSizePercent float64 `yaml:"min_size_percent"`
	MaxSizePercent float64 `yaml:"max_size_percent"`
	MaxLifetime    float64 `yaml:"max_lifetime"` // seconds before forced exit
	GrowthRateMin  float64 `yaml:"growth_rate_min"`
	GrowthRateMax  float64 `yaml:"growth_rate_max"`
	GlowMin        float64 `yaml:"glow_min"`
	GlowMax        float64 `yaml:"glow_max"`
	TailMin        float64 `yaml:"tail_min"`
	TailMax        float64 `yaml:"tail_max"`
	AccelMin       float64 `yaml:"accel_min"` // speed gain per second
	AccelMax       float64 `yaml:"accel_max"`

	// MaxSpeedFactor caps an object's speed at factor × its spawn speed.
	MaxSpeedFactor float64 `yaml:"max_speed_factor"`

	// Palette is the set of base colors, RGB triples in 0..1. Objects
	// pick deterministically by id.
	Palette [][]float64 `yaml:"palette"`
}

// IntegrationConfig holds numeric integration parameters.
type IntegrationConfig struct {
	MaxDT             float64 `yaml:"max_dt"`              // dt clamp, guards against frame stalls
	RotSpeed          float64 `yaml:"rot_speed"`           // base tumble rate, radians per second
	MaxLateralSpeed   float64 `yaml:"max_lateral_speed"`   // xy speed cap
	MinVisibilityTime float64 `yaml:"min_visibility_time"` // min seconds to cross the viewport
	FadeInTime        float64 `yaml:"fade_in_time"`        // opacity ramp after activation
}

// CullConfig holds the two-stage exit parameters.
type CullConfig struct {
	FadeRate       float64 `yaml:"fade_rate"`       // opacity loss per second while exiting
	ReleaseOpacity float64 `yaml:"release_opacity"` // release the slot below this opacity
	ReleaseScale   float64 `yaml:"release_scale"`   // or below this scale
}

// ParticlesConfig holds the ambient dust field parameters.
type ParticlesConfig struct {
	Count       int     `yaml:"count"`
	MinLifetime float64 `yaml:"min_lifetime"`
	MaxLifetime float64 `yaml:"max_lifetime"`
	SpawnRadius float64 `yaml:"spawn_radius"`
}

// HypercubeConfig holds the tesseract centerpiece parameters.
type HypercubeConfig struct {
	Size          float64 `yaml:"size"`
	WCamera       float64 `yaml:"w_camera"`       // 4D projection camera distance
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per second, scaled per plane
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FOVRadians float32      // Space.FOVDegrees in radians
	MaxDT32    float32      // Integration.MaxDT as float32
	Palette    [][3]float32 // validated palette triples
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.FOVRadians = float32(c.Space.FOVDegrees * math.Pi / 180)
	c.Derived.MaxDT32 = float32(c.Integration.MaxDT)

	if len(c.Comet.Palette) == 0 {
		return fmt.Errorf("config: comet palette is empty")
	}
	c.Derived.Palette = make([][3]float32, len(c.Comet.Palette))
	for i, triple := range c.Comet.Palette {
		if len(triple) != 3 {
			return fmt.Errorf("config: palette entry %d has %d components, want 3", i, len(triple))
		}
		for j, v := range triple {
			c.Derived.Palette[i][j] = float32(v)
		}
	}
	return nil
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
