package main

import (
	"fmt"

	"github.com/pthm-cable/sandgames/config"
)

// ParamSpec defines a single tunable level parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Game    string  // survival or feeding
	Level   int     // 1-based
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable parameters: the spawn interval of
// every level of both games.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector builds one spawn interval parameter per configured level,
// with defaults taken from cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{}
	add := func(game string, levels []config.LevelConfig, lo, hi float64) {
		for _, l := range levels {
			pv.Specs = append(pv.Specs, ParamSpec{
				Name:    fmt.Sprintf("%s_l%d_spawn_interval", game, l.Number),
				Game:    game,
				Level:   l.Number,
				Min:     lo,
				Max:     hi,
				Default: l.SpawnInterval,
			})
		}
	}
	add("survival", cfg.Survival.Levels, 1, 12)
	add("feeding", cfg.Feeding.Levels, 0.5, 8)
	return pv
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
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg's level tables.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		levels := cfg.Survival.Levels
		if spec.Game == "feeding" {
			levels = cfg.Feeding.Levels
		}
		levels[spec.Level-1].SpawnInterval = clamped[i]
	}
}

// copyConfig returns a copy of base whose level tables can be edited freely.
func copyConfig(base *config.Config) *config.Config {
	c := *base
	c.Survival.Levels = append([]config.LevelConfig(nil), base.Survival.Levels...)
	c.Feeding.Levels = append([]config.LevelConfig(nil), base.Feeding.Levels...)
	return &c
}
