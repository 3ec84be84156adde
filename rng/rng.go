// Package rng provides the deterministic random source shared by the simulation.
//
// Every draw made by the engine (placement, initial weights, selection,
// crossover, mutation, respawn) goes through one Source, so a seed fully
// determines a run.
package rng

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is a seedable PCG random source.
type Source struct {
	pcg *rand.PCG
	r   *rand.Rand
}

// New creates a deterministic source from seed.
func New(seed uint64) *Source {
	pcg := rand.NewPCG(seed, 0)
	return &Source{pcg: pcg, r: rand.New(pcg)}
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Range returns a value uniformly distributed in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// Angle returns a heading in [0, 2*Pi).
func (s *Source) Angle() float64 {
	a := s.r.Float64() * 2 * math.Pi
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// IntN returns a value in [0, n). Returns 0 if n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Bool returns a fair coin flip.
func (s *Source) Bool() bool {
	return s.r.Uint64()&1 == 1
}

// Norm draws from a normal distribution on the same sequence.
func (s *Source) Norm(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: s.pcg}.Rand()
}

// Source exposes the underlying generator for gonum distributions.
func (s *Source) Source() rand.Source { return s.pcg }
