package telemetry

import (
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/pthm-cable/foragers/evolution"
	"github.com/pthm-cable/foragers/neural"
)

// HallEntry is one of the best genomes seen so far.
type HallEntry struct {
	Generation uint64
	Slot       int
	Fitness    float64
	Weights    neural.BrainWeights
}

// HallOfFame keeps the top genomes by fitness across all generations.
// Among equal fitness the earlier entry ranks higher.
type HallOfFame struct {
	hall    []HallEntry
	maxSize int
	topo    neural.Topology
}

// NewHallOfFame creates a hall with the given capacity for brains of topo.
func NewHallOfFame(maxSize int, topo neural.Topology) *HallOfFame {
	return &HallOfFame{
		hall:    make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
		topo:    topo,
	}
}

// Consider evaluates a scored genome for entry.
// Returns true if it was added to the hall.
func (hof *HallOfFame) Consider(generation uint64, slot int, ind evolution.Individual) bool {
	if hof.maxSize <= 0 || ind.Fitness <= 0 {
		return false
	}
	// Full and not better than the current last entry
	if len(hof.hall) >= hof.maxSize && ind.Fitness <= hof.hall[len(hof.hall)-1].Fitness {
		return false
	}

	weights, err := neural.WeightsFromGenome(hof.topo, ind.Genome)
	if err != nil {
		slog.Warn("hall_of_fame: rejecting genome", "generation", generation, "slot", slot, "error", err)
		return false
	}

	hof.hall = hof.insertEntry(hof.hall, HallEntry{
		Generation: generation,
		Slot:       slot,
		Fitness:    ind.Fitness,
		Weights:    weights,
	})
	return true
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) []HallEntry {
	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall
	}

	// Insert at position
	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	// Trim if over capacity
	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}

	return hall
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.hall)
}

// TopFitness returns the highest fitness in the hall.
// Returns 0 if the hall is empty.
func (hof *HallOfFame) TopFitness() float64 {
	if len(hof.hall) == 0 {
		return 0
	}
	return hof.hall[0].Fitness
}

// Entries returns the hall in rank order.
func (hof *HallOfFame) Entries() []HallEntry {
	return append([]HallEntry(nil), hof.hall...)
}

// hallEntryJSON is the JSON-serializable representation of a hall entry.
type hallEntryJSON struct {
	Rank       int                 `json:"rank"`
	Generation uint64              `json:"generation"`
	Slot       int                 `json:"slot"`
	Fitness    float64             `json:"fitness"`
	Weights    neural.BrainWeights `json:"brain"`
}

// MarshalJSON serializes the hall of fame to JSON, best first.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	entries := make([]hallEntryJSON, len(hof.hall))
	for i, entry := range hof.hall {
		entries[i] = hallEntryJSON{
			Rank:       i + 1,
			Generation: entry.Generation,
			Slot:       entry.Slot,
			Fitness:    entry.Fitness,
			Weights:    entry.Weights,
		}
	}
	return json.MarshalIndent(entries, "", "  ")
}
