package main

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/game"
	"github.com/pthm-cable/foragers/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	generations uint64
	tail        int // trailing generations averaged into the score
	seeds       []uint64
	baseConfig  *config.Config
	logger      *slog.Logger

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastMeanFit    float64 // mean fitness from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations uint64, tail int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	if tail < 1 {
		tail = 1
	}
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		tail:        tail,
		seeds:       seeds,
		baseConfig:  baseCfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastMeanFitness returns the mean animal fitness from the most recent evaluation.
func (fe *FitnessEvaluator) LastMeanFitness() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMeanFit
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	meanFitness float64
	hallOfFame  *telemetry.HallOfFame
	err         error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean animal fitness over the trailing generations,
// averaged across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Seeds are independent simulations
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var total float64
	var bestSeed = math.Inf(-1)
	var bestSeedHallOfFame *telemetry.HallOfFame

	for _, r := range results {
		if r.err != nil {
			slog.Warn("evaluation failed", "error", r.err)
			return math.Inf(1)
		}
		total += r.meanFitness
		if r.meanFitness > bestSeed {
			bestSeed = r.meanFitness
			bestSeedHallOfFame = r.hallOfFame
		}
	}

	meanFit := total / float64(len(results))
	fitness := -meanFit

	fe.mu.Lock()
	fe.lastMeanFit = meanFit
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.mu.Unlock()

	return fitness
}

// runSimulation runs one seed to completion and scores its trailing generations.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed uint64) seedResult {
	var means []float64
	r, err := game.NewRunner(cfg, game.Options{
		Seed:           seed,
		StepsPerUpdate: cfg.Generation.Length,
		MaxGenerations: fe.generations,
		Logger:         fe.logger,
		StatsCallback: func(s telemetry.GenerationStats) {
			means = append(means, s.FitnessMean)
		},
	})
	if err != nil {
		return seedResult{err: err}
	}
	defer r.Close()

	for !r.Done() {
		r.Update()
	}

	if len(means) > fe.tail {
		means = means[len(means)-fe.tail:]
	}
	return seedResult{
		meanFitness: stat.Mean(means, nil),
		hallOfFame:  r.HallOfFame(),
	}
}
