// Package main provides CMA-ES tuning of card easing rates.
package main

import (
	"github.com/pthm-cable/cardpile/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	get func(*config.CardsConfig) float64
	set func(*config.CardsConfig, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "base_rate", Path: "cards.base_rate", Min: 0.02, Max: 0.6, Default: 0.1,
				get: func(c *config.CardsConfig) float64 { return c.BaseRate },
				set: func(c *config.CardsConfig, v float64) { c.BaseRate = v },
			},
			{
				Name: "drag_scale_rate", Path: "cards.drag_scale_rate", Min: 0.02, Max: 0.6, Default: 0.1,
				get: func(c *config.CardsConfig) float64 { return c.DragScaleRate },
				set: func(c *config.CardsConfig, v float64) { c.DragScaleRate = v },
			},
			{
				Name: "release_rate", Path: "cards.release_rate", Min: 0.02, Max: 0.6, Default: 0.15,
				get: func(c *config.CardsConfig) float64 { return c.ReleaseRate },
				set: func(c *config.CardsConfig, v float64) { c.ReleaseRate = v },
			},
			{
				Name: "settle_rate", Path: "cards.settle_rate", Min: 0.02, Max: 0.6, Default: 0.2,
				get: func(c *config.CardsConfig) float64 { return c.SettleRate },
				set: func(c *config.CardsConfig, v float64) { c.SettleRate = v },
			},
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

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		spec.set(&cfg.Cards, clamped[i])
	}
}

// ExtractFromConfig reads current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(&cfg.Cards)
	}
	return v
}
