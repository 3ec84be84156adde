package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, snapshots, and config")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	maxGenerations := flag.Uint64("max-generations", 0, "Stop after N generations (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 100, "Simulation ticks per update call")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	r, err := game.NewRunner(cfg, game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		MaxGenerations: *maxGenerations,
		Logger:         logger,
	})
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting simulation",
		"seed", r.Sim().Config().Seed,
		"population", cfg.Population.Size,
		"food", cfg.Food.Count,
		"generation_length", cfg.Generation.Length,
		"max_ticks", *maxTicks,
		"max_generations", *maxGenerations,
		"steps_per_update", *stepsPerUpdate,
	)

	for ctx.Err() == nil && !r.Done() {
		r.Update()

		if *maxTicks > 0 && r.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", r.Tick())
			break
		}
	}

	slog.Info("simulation finished",
		"tick", r.Tick(),
		"generation", r.Generation(),
		"best_fitness", r.HallOfFame().TopFitness(),
		"perf", r.PerfStats(),
	)

	if err := r.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
		os.Exit(1)
	}
}
