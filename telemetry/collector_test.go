package telemetry

import (
	"testing"

	"github.com/pthm-cable/foragers/evolution"
	"github.com/pthm-cable/foragers/sim"
)

func TestCollector(t *testing.T) {
	hof := NewHallOfFame(5, hofTopo)
	c := NewCollector(hof)

	c.OnMeal(sim.MealEvent{Tick: 12})
	c.OnMeal(sim.MealEvent{Tick: 30})
	c.OnMeal(sim.MealEvent{Tick: 31})
	if c.Meals() != 3 {
		t.Errorf("Meals = %d, want 3", c.Meals())
	}

	c.OnGeneration(sim.GenerationEvent{
		Generation: 0,
		Ticks:      100,
		Population: []evolution.Individual{scoredGenome(2), scoredGenome(1), scoredGenome(0)},
	})

	records := c.Flush()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	s := records[0].Stats
	if s.Meals != 3 || s.FirstMealTick != 12 {
		t.Errorf("meals %d first tick %d, want 3 and 12", s.Meals, s.FirstMealTick)
	}
	if s.Starved != 1 || s.FitnessMax != 2 {
		t.Errorf("starved %d max %v", s.Starved, s.FitnessMax)
	}
	if hof.Size() != 2 {
		t.Errorf("hall size = %d, want 2", hof.Size())
	}

	// Counters reset for the next generation
	if c.Meals() != 0 {
		t.Errorf("Meals = %d after generation, want 0", c.Meals())
	}
	if len(c.Flush()) != 0 {
		t.Error("second Flush should be empty")
	}

	c.OnGeneration(sim.GenerationEvent{Generation: 1, Ticks: 100, Population: []evolution.Individual{scoredGenome(0)}})
	if got := c.Flush()[0].Stats.FirstMealTick; got != -1 {
		t.Errorf("first meal tick = %d with no meals, want -1", got)
	}
}

func TestCollectorWithoutHallOfFame(t *testing.T) {
	c := NewCollector(nil)
	c.OnGeneration(sim.GenerationEvent{Population: []evolution.Individual{scoredGenome(5)}})
	if len(c.Flush()) != 1 {
		t.Error("expected one record")
	}
}
