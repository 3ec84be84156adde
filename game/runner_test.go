package game

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/telemetry"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Population.Size = 8
	cfg.Food.Count = 30
	cfg.Generation.Length = 40
	cfg.Physics.EatingRadius = 0.03
	return cfg
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunnerStopsAtMaxGenerations(t *testing.T) {
	dir := t.TempDir()
	var stats []telemetry.GenerationStats

	r, err := NewRunner(testConfig(), Options{
		Seed:           3,
		OutputDir:      dir,
		StepsPerUpdate: 15,
		MaxGenerations: 2,
		Logger:         discard,
		StatsCallback:  func(s telemetry.GenerationStats) { stats = append(stats, s) },
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	for i := 0; i < 100 && !r.Done(); i++ {
		r.Update()
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !r.Done() {
		t.Fatal("runner never finished")
	}
	if r.Tick() != 80 {
		t.Errorf("ran %d ticks, want exactly 80", r.Tick())
	}
	if r.Generation() != 2 {
		t.Errorf("generation = %d, want 2", r.Generation())
	}
	if len(stats) != 2 || stats[0].Generation != 0 || stats[1].Generation != 1 {
		t.Errorf("unexpected stats callbacks: %+v", stats)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 3 {
		t.Errorf("generations.csv has %d lines, want 3", len(lines))
	}

	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("config.yaml: %v", err)
	}
	if loaded.Seed != 3 {
		t.Errorf("config.yaml seed = %d, want the overridden 3", loaded.Seed)
	}
	if _, err := os.Stat(filepath.Join(dir, "hall_of_fame.json")); err != nil {
		t.Errorf("hall_of_fame.json: %v", err)
	}
}

func TestRunnerWithoutOutput(t *testing.T) {
	r, err := NewRunner(testConfig(), Options{Logger: discard})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	for i := 0; i < 50; i++ {
		r.Update()
	}
	if r.Tick() != 50 {
		t.Errorf("ran %d ticks, want 50 at one step per update", r.Tick())
	}
	if r.Done() {
		t.Error("runner without a generation limit should never be done")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestRunnerMatchesSimulation(t *testing.T) {
	a, err := NewRunner(testConfig(), Options{Seed: 11, StepsPerUpdate: 25, Logger: discard})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunner(testConfig(), Options{Seed: 11, StepsPerUpdate: 1, Logger: discard})
	if err != nil {
		t.Fatal(err)
	}

	a.Update()
	for i := 0; i < 25; i++ {
		b.Update()
	}

	wa, wb := a.Sim().World(), b.Sim().World()
	for i := range wa.Animals {
		if wa.Animals[i] != wb.Animals[i] {
			t.Fatalf("animal %d differs between update granularities", i)
		}
	}
}

func TestNewRunnerInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Food.Count = 0

	_, err := NewRunner(cfg, Options{Logger: discard})
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *config.ConfigError, got %v", err)
	}
}
