package sim

import (
	"log/slog"

	"github.com/pthm-cable/foragers/evolution"
)

// MealEvent describes one food item being eaten.
type MealEvent struct {
	Generation uint64
	Tick       uint64 // tick within the generation, before it is incremented
	Animal     int
	Food       int
}

// GenerationEvent is emitted once per generation, just before evolution.
// Population holds copies of every genome with the fitness it earned and
// World is the final state of the generation; observers may keep both.
type GenerationEvent struct {
	Generation uint64
	Ticks      uint64
	Population []evolution.Individual
	World      Snapshot
}

// Observer receives simulation events synchronously from Step.
type Observer interface {
	OnMeal(MealEvent)
	OnGeneration(GenerationEvent)
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for generation records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers an observer. Multiple observers are called in order.
func WithObserver(o Observer) Option {
	return func(s *Simulation) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}
