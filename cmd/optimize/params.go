package main

import (
	"math"

	"github.com/pthm-cable/foragers/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Mutation
			{Name: "mutation_rate", Path: "mutation.rate", Min: 0.001, Max: 0.2, Default: 0.01},
			{Name: "mutation_magnitude", Path: "mutation.magnitude", Min: 0.01, Max: 1.0, Default: 0.3},
			// Steering limits
			{Name: "max_turn", Path: "physics.max_turn", Min: 0.05, Max: math.Pi, Default: math.Pi / 2},
			{Name: "max_accel", Path: "physics.max_accel", Min: 0.0001, Max: 0.5, Default: 0.2},
			// Initial weights
			{Name: "init_range", Path: "brain.init_range", Min: 0.1, Max: 3.0, Default: 1.0},
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
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Mutation.Rate = clamped[0]
	cfg.Mutation.Magnitude = clamped[1]
	cfg.Physics.MaxTurn = clamped[2]
	cfg.Physics.MaxAccel = clamped[3]
	cfg.Brain.InitRange = clamped[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Mutation.Rate,
		cfg.Mutation.Magnitude,
		cfg.Physics.MaxTurn,
		cfg.Physics.MaxAccel,
		cfg.Brain.InitRange,
	}
}
