package game

import (
	"log/slog"

	"github.com/pthm-cable/foragers/telemetry"
)

// Options configures a Runner.
type Options struct {
	Seed           uint64 // 0 = keep the config seed
	LogStats       bool   // log per-generation stats and bookmarks
	OutputDir      string // empty = no files written
	StepsPerUpdate int    // ticks per Update call, minimum 1
	MaxGenerations uint64 // 0 = unlimited

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// StatsCallback, if set, receives every completed generation's stats.
	StatsCallback func(telemetry.GenerationStats)
}
