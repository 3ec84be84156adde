package evolution

import "github.com/pthm-cable/foragers/rng"

// Crossover combines two parent genomes into a new child genome.
type Crossover interface {
	Cross(src *rng.Source, a, b []float64) []float64
}

// Mutator perturbs a genome in place.
type Mutator interface {
	Mutate(src *rng.Source, genes []float64)
}

// UniformCrossover picks every gene from either parent with equal probability.
type UniformCrossover struct{}

func (UniformCrossover) Cross(src *rng.Source, a, b []float64) []float64 {
	child := make([]float64, len(a))
	for i := range child {
		if src.Bool() {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

// GaussianMutation adds N(0, Magnitude) noise to each gene with probability Rate.
type GaussianMutation struct {
	Rate      float64
	Magnitude float64
}

func (m GaussianMutation) Mutate(src *rng.Source, genes []float64) {
	for i := range genes {
		if src.Float64() < m.Rate {
			genes[i] += src.Norm(0, m.Magnitude)
		}
	}
}
