package evolution

import (
	"errors"
	"testing"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/rng"
)

func population(n, genomeLen int, fitness func(i int) float64) []Individual {
	pop := make([]Individual, n)
	for i := range pop {
		pop[i] = Individual{Genome: filled(genomeLen, float64(i)), Fitness: fitness(i)}
	}
	return pop
}

func TestEvolveProducesFullPopulation(t *testing.T) {
	engine := NewEngine(config.MutationConfig{Rate: 0.01, Magnitude: 0.3})

	for _, n := range []int{1, 2, 7, 40} {
		pop := population(n, 5, func(i int) float64 { return float64(i) })
		offspring, err := engine.Evolve(rng.New(1), pop)
		if err != nil {
			t.Fatalf("Evolve(%d): %v", n, err)
		}
		if len(offspring) != n {
			t.Errorf("Evolve(%d) returned %d offspring", n, len(offspring))
		}
		for i, child := range offspring {
			if len(child) != 5 {
				t.Errorf("offspring %d has %d genes, want 5", i, len(child))
			}
		}
	}
}

func TestEvolveZeroFitness(t *testing.T) {
	engine := NewEngine(config.MutationConfig{Rate: 0.01, Magnitude: 0.3})
	pop := population(10, 3, func(int) float64 { return 0 })

	offspring, err := engine.Evolve(rng.New(2), pop)
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	if len(offspring) != 10 {
		t.Errorf("got %d offspring, want 10", len(offspring))
	}
}

func TestEvolveFavorsFitParents(t *testing.T) {
	// No mutation: every child gene is copied from a parent
	engine := NewEngine(config.MutationConfig{Rate: 0, Magnitude: 0})
	pop := population(4, 20, func(i int) float64 {
		if i == 3 {
			return 1
		}
		return 0
	})

	offspring, err := engine.Evolve(rng.New(3), pop)
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	for i, child := range offspring {
		for j, g := range child {
			if g != 3 {
				t.Fatalf("offspring %d gene %d = %v, only parent 3 has fitness", i, j, g)
			}
		}
	}
}

func TestEvolveDoesNotAliasParents(t *testing.T) {
	engine := NewEngine(config.MutationConfig{Rate: 0, Magnitude: 0})
	pop := population(3, 4, func(int) float64 { return 1 })

	offspring, err := engine.Evolve(rng.New(4), pop)
	if err != nil {
		t.Fatal(err)
	}
	for _, child := range offspring {
		child[0] = -100
	}
	for i, ind := range pop {
		if ind.Genome[0] != float64(i) {
			t.Errorf("parent %d genome modified through offspring", i)
		}
	}
}

func TestEvolveDeterministic(t *testing.T) {
	engine := NewEngine(config.MutationConfig{Rate: 0.5, Magnitude: 0.3})
	pop := population(8, 6, func(i int) float64 { return float64(i % 3) })

	a, err := engine.Evolve(rng.New(99), pop)
	if err != nil {
		t.Fatal(err)
	}
	b, err := engine.Evolve(rng.New(99), pop)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("offspring %d gene %d differs between equal seeds", i, j)
			}
		}
	}
}

func TestEvolveErrors(t *testing.T) {
	engine := NewEngine(config.MutationConfig{})

	if _, err := engine.Evolve(rng.New(1), nil); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("expected ErrEmptyPopulation, got %v", err)
	}

	mixed := []Individual{
		{Genome: []float64{1, 2}},
		{Genome: []float64{1}},
	}
	if _, err := engine.Evolve(rng.New(1), mixed); err == nil {
		t.Error("expected error for mismatched genome lengths")
	}
}
