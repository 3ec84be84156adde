package evolution

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/rng"
)

// ErrEmptyPopulation is returned when there is nothing to evolve.
var ErrEmptyPopulation = errors.New("empty population")

// Engine composes selection, crossover, and mutation.
type Engine struct {
	Selector  Selector
	Crossover Crossover
	Mutator   Mutator
}

// NewEngine creates the standard engine: roulette wheel selection,
// uniform crossover, and Gaussian mutation.
func NewEngine(cfg config.MutationConfig) *Engine {
	return &Engine{
		Selector:  RouletteWheel{},
		Crossover: UniformCrossover{},
		Mutator:   GaussianMutation{Rate: cfg.Rate, Magnitude: cfg.Magnitude},
	}
}

// Evolve returns exactly len(population) offspring genomes.
// Offspring never share storage with their parents.
func (e *Engine) Evolve(src *rng.Source, population []Individual) ([][]float64, error) {
	if len(population) == 0 {
		return nil, ErrEmptyPopulation
	}
	genomeLen := len(population[0].Genome)
	for i, ind := range population {
		if len(ind.Genome) != genomeLen {
			return nil, fmt.Errorf("individual %d: genome length %d, want %d", i, len(ind.Genome), genomeLen)
		}
	}

	sampler := e.Selector.Prepare(src, population)
	offspring := make([][]float64, 0, len(population))
	for range population {
		a := population[sampler.Sample()]
		b := population[sampler.Sample()]

		child := e.Crossover.Cross(src, a.Genome, b.Genome)
		e.Mutator.Mutate(src, child)
		offspring = append(offspring, child)
	}

	return offspring, nil
}
