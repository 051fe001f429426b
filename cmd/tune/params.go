package main

import (
	"github.com/pthm-cable/airhockey/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Column name in the log
	Path    string  // Config path
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the parameter set, with defaults taken from base.
func NewParamVector(base *config.Config) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "puck_damping", Path: "puck.linear_damping", Min: 0, Max: 0.3, Default: base.Puck.LinearDamping},
			{Name: "puck_max_speed", Path: "puck.max_speed", Min: 800, Max: 2600, Default: base.Puck.MaxSpeed},
			{Name: "puck_restitution", Path: "puck.restitution", Min: 0.6, Max: 1.0, Default: base.Puck.Restitution},
			{Name: "paddle_max_speed", Path: "paddle.max_speed", Min: 1200, Max: 3600, Default: base.Paddle.MaxSpeed},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw values to the [0,1] search space.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	n := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		n[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return n
}

// Denormalize converts search-space values back to raw values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp pulls every value inside its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into cfg. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Puck.LinearDamping = c[0]
	cfg.Puck.MaxSpeed = c[1]
	cfg.Puck.Restitution = c[2]
	cfg.Paddle.MaxSpeed = c[3]
}

// ExtractFromConfig reads the current values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Puck.LinearDamping,
		cfg.Puck.MaxSpeed,
		cfg.Puck.Restitution,
		cfg.Paddle.MaxSpeed,
	}
}
