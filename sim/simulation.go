// Package sim runs the forage and evolve loop behind a two-call interface:
// World for a snapshot and Step to advance one tick.
package sim

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/evolution"
	"github.com/pthm-cable/foragers/neural"
	"github.com/pthm-cable/foragers/rng"
	"github.com/pthm-cable/foragers/systems"
	"github.com/pthm-cable/foragers/world"
)

// Simulation owns the world, the random source, and the evolution engine.
// It is not safe for concurrent use.
type Simulation struct {
	cfg     *config.Config
	src     *rng.Source
	store   *world.Store
	eye     systems.Eye
	physics systems.Physics
	engine  *evolution.Engine

	retina []float64

	logger    *slog.Logger
	observers []Observer
}

// New validates cfg and builds a simulation. A nil cfg uses the defaults.
// Invalid configurations return an error wrapping *config.ConfigError.
func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Simulation{
		cfg:     cfg,
		src:     rng.New(cfg.Seed),
		eye:     systems.NewEye(cfg.Eye),
		physics: systems.NewPhysics(cfg.Physics),
		engine:  evolution.NewEngine(cfg.Mutation),
		retina:  make([]float64, cfg.Eye.Cells),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	topo := neural.Topology{Inputs: cfg.Eye.Cells, Hidden: cfg.Derived.HiddenNeurons}
	minds := make([]components.Mind, cfg.Population.Size)
	for i := range minds {
		minds[i].Brain = neural.NewBrain(s.src, topo, cfg.Brain.InitRange)
	}
	s.store = world.New(minds, cfg.Food.Count)
	s.scatter()

	return s, nil
}

// scatter gives every animal a fresh position, heading, and starting speed,
// clears fitness, then redraws every food position. Brains are untouched.
func (s *Simulation) scatter() {
	for i := 0; i < s.store.NumAnimals(); i++ {
		a := s.store.Animal(i)
		*a.Pos = systems.RandomPosition(s.src)
		a.Rot.Angle = s.src.Angle()
		a.Motion.Speed = s.cfg.Physics.InitialSpeed
		a.Forager.Fitness = 0
	}
	for i := 0; i < s.store.Len(); i++ {
		s.store.SetFood(i, systems.RandomPosition(s.src))
	}
}

// Step advances the world by one tick and returns the generation counter.
// When the tick completes a generation, the population is evolved before
// Step returns.
func (s *Simulation) Step() uint64 {
	for i := 0; i < s.store.NumAnimals(); i++ {
		a := s.store.Animal(i)

		s.eye.Process(*a.Pos, a.Rot.Angle, s.store, s.retina)
		turn, accel := a.Mind.Brain.Forward(s.retina)
		s.physics.Steer(a.Rot, a.Motion, turn, accel)
		systems.Advance(a.Pos, *a.Rot, *a.Motion)

		if j, ok := s.physics.Nearest(*a.Pos, s.store); ok {
			if a.Forager.Fitness < math.MaxUint32 {
				a.Forager.Fitness++
			}
			s.store.SetFood(j, systems.RandomPosition(s.src))
			s.emitMeal(MealEvent{Generation: s.store.Generation, Tick: s.store.Tick, Animal: i, Food: j})
		}
	}

	s.store.Tick++
	if s.store.Tick >= uint64(s.cfg.Generation.Length) {
		s.evolve()
	}
	return s.store.Generation
}

// evolve replaces every brain with an offspring and starts a new generation.
func (s *Simulation) evolve() {
	n := s.store.NumAnimals()
	population := make([]evolution.Individual, n)
	for i := 0; i < n; i++ {
		a := s.store.Animal(i)
		population[i] = evolution.Individual{
			Genome:  a.Mind.Brain.Genome(),
			Fitness: float64(a.Forager.Fitness),
		}
	}

	s.logGeneration(population)
	if len(s.observers) > 0 {
		ev := GenerationEvent{
			Generation: s.store.Generation,
			Ticks:      s.store.Tick,
			Population: population,
			World:      s.World(),
		}
		for _, o := range s.observers {
			o.OnGeneration(ev)
		}
	}

	offspring, err := s.engine.Evolve(s.src, population)
	if err != nil {
		// Population size and genome length are fixed at construction
		panic(fmt.Sprintf("sim: evolve: %v", err))
	}
	for i, genes := range offspring {
		if err := s.store.Animal(i).Mind.Brain.LoadGenome(genes); err != nil {
			panic(fmt.Sprintf("sim: load offspring %d: %v", i, err))
		}
	}

	s.store.Generation++
	s.store.Tick = 0
	s.scatter()
}

func (s *Simulation) emitMeal(ev MealEvent) {
	for _, o := range s.observers {
		o.OnMeal(ev)
	}
}

func (s *Simulation) logGeneration(population []evolution.Individual) {
	var total, best float64
	for _, ind := range population {
		total += ind.Fitness
		best = math.Max(best, ind.Fitness)
	}
	s.logger.Info("generation evolved",
		"generation", s.store.Generation,
		"ticks", s.store.Tick,
		"meals", total,
		"best_fitness", best,
		"mean_fitness", total/float64(len(population)),
		"selection", s.engine.Selector.Name(),
	)
}

// Fitness returns a copy of every animal's fitness for the current generation.
func (s *Simulation) Fitness() []uint32 {
	out := make([]uint32, s.store.NumAnimals())
	for i := range out {
		out[i] = s.store.Animal(i).Forager.Fitness
	}
	return out
}

// Genome returns a copy of animal i's genome.
func (s *Simulation) Genome(i int) []float64 {
	return s.store.Animal(i).Mind.Brain.Genome()
}

// Generation returns the generation counter.
func (s *Simulation) Generation() uint64 { return s.store.Generation }

// Tick returns the tick within the current generation.
func (s *Simulation) Tick() uint64 { return s.store.Tick }

// Config returns a copy of the effective configuration.
func (s *Simulation) Config() *config.Config { return s.cfg.Clone() }
