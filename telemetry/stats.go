// Package telemetry turns generation results into statistics, bookmarks,
// and experiment output files.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/foragers/evolution"
)

// GenerationStats summarizes one completed generation.
type GenerationStats struct {
	Generation uint64 `csv:"generation"`
	Ticks      uint64 `csv:"ticks"`

	// Foraging events
	Meals         int   `csv:"meals"`
	FirstMealTick int64 `csv:"first_meal_tick"` // -1 if nothing was eaten
	Starved       int   `csv:"starved"`         // animals with zero fitness

	// Fitness distribution
	FitnessMin  float64 `csv:"fitness_min"`
	FitnessMax  float64 `csv:"fitness_max"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	// Mean per-gene standard deviation across the population
	GenomeSpread float64 `csv:"genome_spread"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFitnessStats calculates mean, population std, and percentiles.
func ComputeFitnessStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	// Sort for percentiles
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// GenomeSpread returns the mean over gene positions of the population
// standard deviation at that position. Zero means every genome is identical.
func GenomeSpread(population []evolution.Individual) float64 {
	if len(population) == 0 || len(population[0].Genome) == 0 {
		return 0
	}

	genes := len(population[0].Genome)
	column := make([]float64, len(population))
	var total float64
	for j := 0; j < genes; j++ {
		for i, ind := range population {
			column[i] = ind.Genome[j]
		}
		_, std := stat.PopMeanStdDev(column, nil)
		total += std
	}
	return total / float64(genes)
}

// ComputeGenerationStats summarizes a scored population.
// Meal counters are left for the caller to fill in.
func ComputeGenerationStats(generation, ticks uint64, population []evolution.Individual) GenerationStats {
	s := GenerationStats{
		Generation:    generation,
		Ticks:         ticks,
		FirstMealTick: -1,
	}
	if len(population) == 0 {
		return s
	}

	fitness := make([]float64, len(population))
	for i, ind := range population {
		fitness[i] = ind.Fitness
		if ind.Fitness == 0 {
			s.Starved++
		}
	}

	s.FitnessMin = floats.Min(fitness)
	s.FitnessMax = floats.Max(fitness)
	s.FitnessMean, s.FitnessStd, s.FitnessP10, s.FitnessP50, s.FitnessP90 = ComputeFitnessStats(fitness)
	s.GenomeSpread = GenomeSpread(population)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("generation", s.Generation),
		slog.Uint64("ticks", s.Ticks),
		slog.Int("meals", s.Meals),
		slog.Int64("first_meal_tick", s.FirstMealTick),
		slog.Int("starved", s.Starved),
		slog.Float64("fitness_min", s.FitnessMin),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p10", s.FitnessP10),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_p90", s.FitnessP90),
		slog.Float64("genome_spread", s.GenomeSpread),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats",
		"generation", s.Generation,
		"meals", s.Meals,
		"first_meal_tick", s.FirstMealTick,
		"starved", s.Starved,
		"fitness_max", s.FitnessMax,
		"fitness_mean", s.FitnessMean,
		"fitness_p50", s.FitnessP50,
		"genome_spread", s.GenomeSpread,
	)
}
