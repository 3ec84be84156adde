// Package game drives a simulation headlessly and wires it to telemetry.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/neural"
	"github.com/pthm-cable/foragers/sim"
	"github.com/pthm-cable/foragers/telemetry"
)

// bookmarkHistory is the number of generations the bookmark detector averages over.
const bookmarkHistory = 10

// Runner owns a simulation and its telemetry.
type Runner struct {
	sim    *sim.Simulation
	cfg    *config.Config
	topo   neural.Topology
	logger *slog.Logger

	collector        *telemetry.Collector
	hallOfFame       *telemetry.HallOfFame
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager

	logStats       bool
	stepsPerUpdate int
	maxGenerations uint64
	statsCallback  func(telemetry.GenerationStats)

	ticks uint64 // total ticks across generations
}

// NewRunner builds a simulation from cfg and prepares its output directory.
func NewRunner(cfg *config.Config, opts Options) (*Runner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.Clone()
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	r := &Runner{
		cfg:              cfg,
		topo:             neural.Topology{Inputs: cfg.Eye.Cells, Hidden: cfg.Derived.HiddenNeurons},
		logger:           logger,
		bookmarkDetector: telemetry.NewBookmarkDetector(bookmarkHistory),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:         opts.LogStats,
		stepsPerUpdate:   steps,
		maxGenerations:   opts.MaxGenerations,
		statsCallback:    opts.StatsCallback,
	}
	r.hallOfFame = telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize, r.topo)
	r.collector = telemetry.NewCollector(r.hallOfFame)

	s, err := sim.New(cfg, sim.WithLogger(logger), sim.WithObserver(r.collector))
	if err != nil {
		return nil, err
	}
	r.sim = s

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	r.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	return r, nil
}

// Update advances the simulation by StepsPerUpdate ticks, stopping early
// once MaxGenerations is reached.
func (r *Runner) Update() {
	for i := 0; i < r.stepsPerUpdate && !r.Done(); i++ {
		r.perfCollector.StartTick()

		r.perfCollector.StartPhase(telemetry.PhaseStep)
		r.sim.Step()
		r.ticks++

		r.perfCollector.StartPhase(telemetry.PhaseTelemetry)
		r.flushTelemetry()

		r.perfCollector.EndTick()
	}
}

// flushTelemetry handles every generation completed since the last call.
func (r *Runner) flushTelemetry() {
	records := r.collector.Flush()
	if len(records) == 0 {
		return
	}

	r.perfCollector.StartPhase(telemetry.PhaseOutput)
	perfStats := r.perfCollector.Stats()

	for _, rec := range records {
		stats := rec.Stats

		if r.statsCallback != nil {
			r.statsCallback(stats)
		}

		if r.logStats {
			stats.LogStats(r.logger)
			r.logger.Info("perf", "generation", stats.Generation, "perf", perfStats)
		}

		if err := r.outputManager.WriteGeneration(stats); err != nil {
			r.logger.Error("failed to write generation", "error", err)
		}
		if err := r.outputManager.WritePerf(perfStats, stats.Generation); err != nil {
			r.logger.Error("failed to write perf", "error", err)
		}

		for _, bm := range r.bookmarkDetector.Check(stats) {
			if r.logStats {
				bm.LogBookmark(r.logger)
			}
			if err := r.outputManager.WriteBookmark(bm); err != nil {
				r.logger.Error("failed to write bookmark", "error", err)
			}
			r.saveSnapshot(rec.Event, bm)
		}
	}

	if err := r.outputManager.WriteHallOfFame(r.hallOfFame); err != nil {
		r.logger.Error("failed to write hall of fame", "error", err)
	}
}

// saveSnapshot records the generation that triggered a bookmark.
func (r *Runner) saveSnapshot(ev sim.GenerationEvent, bm telemetry.Bookmark) {
	if r.outputManager == nil {
		return
	}

	snap, err := telemetry.NewSnapshot(r.cfg.Seed, r.topo, ev, &bm)
	if err != nil {
		r.logger.Error("failed to build snapshot", "error", err)
		return
	}
	path, err := r.outputManager.WriteSnapshot(snap)
	if err != nil {
		r.logger.Error("failed to save snapshot", "error", err)
		return
	}
	r.logger.Info("snapshot saved", "path", path, "bookmark", string(bm.Type))
}

// Done reports whether MaxGenerations has been reached.
func (r *Runner) Done() bool {
	return r.maxGenerations > 0 && r.sim.Generation() >= r.maxGenerations
}

// Tick returns the total number of ticks run.
func (r *Runner) Tick() uint64 { return r.ticks }

// Generation returns the current generation.
func (r *Runner) Generation() uint64 { return r.sim.Generation() }

// Sim returns the underlying simulation.
func (r *Runner) Sim() *sim.Simulation { return r.sim }

// HallOfFame returns the best genomes seen so far.
func (r *Runner) HallOfFame() *telemetry.HallOfFame { return r.hallOfFame }

// PerfStats returns timing over the rolling perf window.
func (r *Runner) PerfStats() telemetry.PerfStats { return r.perfCollector.Stats() }

// Close writes the final hall of fame and closes output files.
func (r *Runner) Close() error {
	if err := r.outputManager.WriteHallOfFame(r.hallOfFame); err != nil {
		r.outputManager.Close()
		return err
	}
	return r.outputManager.Close()
}
