// Package main provides CMA-ES tuning for the comet field parameters.
package main

import (
	"github.com/pthm-cable/hypercube/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Spawning
			{Name: "min_speed", Path: "spawn.min_speed", Min: 5, Max: 30, Default: 20},
			{Name: "max_speed", Path: "spawn.max_speed", Min: 30, Max: 120, Default: 40},
			{Name: "min_group_gap", Path: "spawn.min_group_gap", Min: 0.1, Max: 2.0, Default: 0.5},
			{Name: "max_group_gap", Path: "spawn.max_group_gap", Min: 2.0, Max: 6.0, Default: 3.0},
			{Name: "min_population", Path: "spawn.min_population", Min: 1, Max: 20, Default: 5},
			// Motion
			{Name: "accel_min", Path: "comet.accel_min", Min: 1, Max: 15, Default: 5},
			{Name: "accel_max", Path: "comet.accel_max", Min: 15, Max: 60, Default: 30},
			{Name: "min_visibility_time", Path: "integration.min_visibility_time", Min: 0.2, Max: 5.0, Default: 0.5},
			// Exit
			{Name: "fade_rate", Path: "cull.fade_rate", Min: 0.5, Max: 4.0, Default: 1.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	i := 0
	cfg.Spawn.MinSpeed = clamped[i]
	i++
	cfg.Spawn.MaxSpeed = clamped[i]
	i++
	cfg.Spawn.MinGroupGap = clamped[i]
	i++
	cfg.Spawn.MaxGroupGap = clamped[i]
	i++
	cfg.Spawn.MinPopulation = int(clamped[i])
	i++
	cfg.Comet.AccelMin = clamped[i]
	i++
	cfg.Comet.AccelMax = clamped[i]
	i++
	cfg.Integration.MinVisibilityTime = clamped[i]
	i++
	cfg.Cull.FadeRate = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Spawn.MinSpeed,
		cfg.Spawn.MaxSpeed,
		cfg.Spawn.MinGroupGap,
		cfg.Spawn.MaxGroupGap,
		float64(cfg.Spawn.MinPopulation),
		cfg.Comet.AccelMin,
		cfg.Comet.AccelMax,
		cfg.Integration.MinVisibilityTime,
		cfg.Cull.FadeRate,
	}
}
