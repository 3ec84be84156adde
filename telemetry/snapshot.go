package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/foragers/neural"
	"github.com/pthm-cable/foragers/sim"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is a write-only record of a generation's final world and every
// brain with the fitness it earned, taken at a bookmark for offline inspection.
type Snapshot struct {
	Version int    `json:"version"`
	Seed    uint64 `json:"seed"`

	World   sim.Snapshot          `json:"world"`
	Fitness []float64             `json:"fitness"`
	Brains  []neural.BrainWeights `json:"brains"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// NewSnapshot builds a snapshot from a generation event.
func NewSnapshot(seed uint64, topo neural.Topology, ev sim.GenerationEvent, bookmark *Bookmark) (*Snapshot, error) {
	snap := &Snapshot{
		Version:  SnapshotVersion,
		Seed:     seed,
		World:    ev.World,
		Fitness:  make([]float64, len(ev.Population)),
		Brains:   make([]neural.BrainWeights, len(ev.Population)),
		Bookmark: bookmark,
	}

	for i, ind := range ev.Population {
		bw, err := neural.WeightsFromGenome(topo, ind.Genome)
		if err != nil {
			return nil, fmt.Errorf("animal %d: %w", i, err)
		}
		snap.Fitness[i] = ind.Fitness
		snap.Brains[i] = bw
	}
	return snap, nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_gen%d", snapshot.World.Generation)
	if snapshot.Bookmark != nil {
		name = fmt.Sprintf("snapshot_gen%d_%s", snapshot.World.Generation, snapshot.Bookmark.Type)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}
