// Package config provides configuration loading and validation for the simulation.
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
	Seed       uint64           `yaml:"seed"`
	Population PopulationConfig `yaml:"population"`
	Food       FoodConfig       `yaml:"food"`
	Generation GenerationConfig `yaml:"generation"`
	Eye        EyeConfig        `yaml:"eye"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Brain      BrainConfig      `yaml:"brain"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PopulationConfig holds population parameters.
type PopulationConfig struct {
	Size int `yaml:"size"` // Number of animals, constant for the whole run
}

// FoodConfig holds food parameters.
type FoodConfig struct {
	Count int `yaml:"count"` // Number of food items, constant for the whole run
}

// GenerationConfig holds generation timing.
type GenerationConfig struct {
	Length int `yaml:"length"` // Ticks per generation
}

// EyeConfig holds sensor parameters shared by every animal.
type EyeConfig struct {
	FOVAngle    float64 `yaml:"fov_angle"`    // Field of view in radians, (0, 2*Pi]
	Cells       int     `yaml:"cells"`        // Number of angular sectors
	MaxDistance float64 `yaml:"max_distance"` // View range in unit-square units
}

// PhysicsConfig holds motion and foraging parameters.
type PhysicsConfig struct {
	MinSpeed     float64 `yaml:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	InitialSpeed float64 `yaml:"initial_speed"` // Speed every animal starts a generation with
	MaxTurn      float64 `yaml:"max_turn"`      // Maximum rotation change per tick (radians)
	MaxAccel     float64 `yaml:"max_accel"`     // Maximum speed change per tick
	EatingRadius float64 `yaml:"eating_radius"` // 0 disables eating
}

// BrainConfig holds neural network parameters.
type BrainConfig struct {
	HiddenNeurons int     `yaml:"hidden_neurons"` // 0 = 2 * eye cells
	InitRange     float64 `yaml:"init_range"`     // Initial weights are uniform in [-r, r]
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate      float64 `yaml:"rate"`      // Per-gene mutation probability
	Magnitude float64 `yaml:"magnitude"` // Standard deviation of Gaussian noise
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	HallOfFameSize int `yaml:"hall_of_fame_size"`
	PerfWindow     int `yaml:"perf_window"` // Steps averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HiddenNeurons int // Effective hidden layer size
	GenomeLength  int // Weights + biases per brain
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
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
	return cfg, nil
}

// Validate checks every parameter and computes derived values.
// The first violation is returned as a *ConfigError.
func (c *Config) Validate() error {
	fail := func(field, reason string) error {
		return &ConfigError{Field: field, Reason: reason}
	}

	switch {
	case c.Population.Size <= 0:
		return fail("population.size", "must be positive")
	case c.Food.Count <= 0:
		return fail("food.count", "must be positive")
	case c.Generation.Length <= 0:
		return fail("generation.length", "must be positive")
	case c.Eye.Cells <= 0:
		return fail("eye.cells", "must be positive")
	case !(c.Eye.FOVAngle > 0 && c.Eye.FOVAngle <= 2*math.Pi):
		return fail("eye.fov_angle", "must be in (0, 2*pi]")
	case !(c.Eye.MaxDistance > 0) || math.IsInf(c.Eye.MaxDistance, 0):
		return fail("eye.max_distance", "must be positive and finite")
	case !nonNegative(c.Physics.MinSpeed):
		return fail("physics.min_speed", "must be finite and not negative")
	case !nonNegative(c.Physics.MaxSpeed) || c.Physics.MaxSpeed < c.Physics.MinSpeed:
		return fail("physics.max_speed", "must be finite and not below min_speed")
	case !(c.Physics.InitialSpeed >= c.Physics.MinSpeed && c.Physics.InitialSpeed <= c.Physics.MaxSpeed):
		return fail("physics.initial_speed", "must be within [min_speed, max_speed]")
	case !nonNegative(c.Physics.MaxTurn):
		return fail("physics.max_turn", "must be finite and not negative")
	case !nonNegative(c.Physics.MaxAccel):
		return fail("physics.max_accel", "must be finite and not negative")
	case !nonNegative(c.Physics.EatingRadius):
		return fail("physics.eating_radius", "must be finite and not negative")
	case c.Brain.HiddenNeurons < 0:
		return fail("brain.hidden_neurons", "must not be negative")
	case !(c.Brain.InitRange > 0) || math.IsInf(c.Brain.InitRange, 0):
		return fail("brain.init_range", "must be positive and finite")
	case !(c.Mutation.Rate >= 0 && c.Mutation.Rate <= 1):
		return fail("mutation.rate", "must be in [0, 1]")
	case !nonNegative(c.Mutation.Magnitude):
		return fail("mutation.magnitude", "must be finite and not negative")
	case c.Telemetry.HallOfFameSize < 0:
		return fail("telemetry.hall_of_fame_size", "must not be negative")
	case c.Telemetry.PerfWindow < 0:
		return fail("telemetry.perf_window", "must not be negative")
	}

	c.computeDerived()
	return nil
}

// nonNegative reports whether v is finite and >= 0. NaN fails.
func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	hidden := c.Brain.HiddenNeurons
	if hidden == 0 {
		hidden = 2 * c.Eye.Cells
	}
	c.Derived.HiddenNeurons = hidden
	// W1 + B1 + W2 + B2, two outputs
	c.Derived.GenomeLength = hidden*c.Eye.Cells + hidden + 2*hidden + 2
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
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
