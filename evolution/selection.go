// Package evolution turns a scored population of genomes into offspring
// through selection, crossover, and mutation.
package evolution

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/foragers/rng"
)

// Individual is one genome with the fitness it earned.
type Individual struct {
	Genome  []float64
	Fitness float64
}

// Sampler draws parent indices from a prepared population.
type Sampler interface {
	Sample() int
}

// Selector chooses parents from a scored population.
type Selector interface {
	Name() string
	// Prepare returns a sampler over population. Draws come from src.
	Prepare(src *rng.Source, population []Individual) Sampler
}

// RouletteWheel samples with replacement, proportionally to fitness.
// A population with zero total fitness is sampled uniformly.
type RouletteWheel struct{}

func (RouletteWheel) Name() string {
	return "roulette"
}

func (RouletteWheel) Prepare(src *rng.Source, population []Individual) Sampler {
	weights := make([]float64, len(population))
	for i, ind := range population {
		if ind.Fitness > 0 {
			weights[i] = ind.Fitness
		}
	}
	if floats.Sum(weights) <= 0 {
		return uniformSampler{src: src, n: len(population)}
	}
	return categoricalSampler{dist: distuv.NewCategorical(weights, src.Source())}
}

type uniformSampler struct {
	src *rng.Source
	n   int
}

func (s uniformSampler) Sample() int {
	return s.src.IntN(s.n)
}

type categoricalSampler struct {
	dist distuv.Categorical
}

func (s categoricalSampler) Sample() int {
	return int(s.dist.Rand())
}
