package telemetry

import "github.com/pthm-cable/foragers/sim"

// Record pairs a generation's stats with the event it was computed from.
type Record struct {
	Stats GenerationStats
	Event sim.GenerationEvent
}

// Collector accumulates meal events within a generation and produces
// GenerationStats when the generation ends. It implements sim.Observer.
type Collector struct {
	// Current generation tracking
	meals         int
	firstMealTick int64

	hof     *HallOfFame
	pending []Record
}

// NewCollector creates a collector. hof may be nil.
func NewCollector(hof *HallOfFame) *Collector {
	return &Collector{firstMealTick: -1, hof: hof}
}

// OnMeal records a meal.
func (c *Collector) OnMeal(ev sim.MealEvent) {
	if c.firstMealTick < 0 {
		c.firstMealTick = int64(ev.Tick)
	}
	c.meals++
}

// OnGeneration computes stats for the finished generation, offers its
// genomes to the hall of fame, and resets counters for the next one.
func (c *Collector) OnGeneration(ev sim.GenerationEvent) {
	stats := ComputeGenerationStats(ev.Generation, ev.Ticks, ev.Population)
	stats.Meals = c.meals
	stats.FirstMealTick = c.firstMealTick
	c.pending = append(c.pending, Record{Stats: stats, Event: ev})

	if c.hof != nil {
		for slot, ind := range ev.Population {
			c.hof.Consider(ev.Generation, slot, ind)
		}
	}

	// Reset for next generation
	c.meals = 0
	c.firstMealTick = -1
}

// Flush returns the generations completed since the last call, oldest first.
func (c *Collector) Flush() []Record {
	out := c.pending
	c.pending = nil
	return out
}

// Meals returns the meal count of the generation in progress.
func (c *Collector) Meals() int { return c.meals }
