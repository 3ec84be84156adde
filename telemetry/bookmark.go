package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkForageBreakthrough BookmarkType = "forage_breakthrough"
	BookmarkNewRecord          BookmarkType = "new_record"
	BookmarkCollapse           BookmarkType = "collapse"
	BookmarkConvergence        BookmarkType = "convergence"
)

// Bookmark marks a generation worth looking at.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Generation  uint64       `csv:"generation" json:"generation"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting generations from their stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []GenerationStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	bestMax       float64 // highest fitness_max seen
	recentPeak    float64 // peak fitness_mean since the last collapse
	convergedRuns int     // consecutive generations with low genome spread
}

// ConvergenceSpread is the genome spread below which a population counts
// as converged.
const ConvergenceSpread = 0.05

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful rolling average
	}
	return &BookmarkDetector{
		history:     make([]GenerationStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats GenerationStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Mean fitness > 2x rolling average
		if b := bd.checkForageBreakthrough(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Best single animal ever
		if b := bd.checkNewRecord(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Mean fitness dropped >50% from recent peak
		if b := bd.checkCollapse(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Genomes have become nearly identical
	if b := bd.checkConvergence(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Update history
	bd.addToHistory(stats)

	if stats.FitnessMax > bd.bestMax {
		bd.bestMax = stats.FitnessMax
	}
	if stats.FitnessMean > bd.recentPeak {
		bd.recentPeak = stats.FitnessMean
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats GenerationStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []GenerationStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkForageBreakthrough(stats GenerationStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.FitnessMean
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.FitnessMean > avg*2.0 && stats.Meals >= 10 {
		return &Bookmark{
			Type:        BookmarkForageBreakthrough,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Mean fitness %.2f is %.1fx average (%.2f)", stats.FitnessMean, stats.FitnessMean/avg, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkNewRecord(stats GenerationStats) *Bookmark {
	if bd.bestMax == 0 || stats.FitnessMax <= bd.bestMax {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkNewRecord,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("Best fitness %.0f beats previous record %.0f", stats.FitnessMax, bd.bestMax),
	}
}

func (bd *BookmarkDetector) checkCollapse(stats GenerationStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	drop := 1.0 - stats.FitnessMean/bd.recentPeak
	if drop > 0.50 && bd.recentPeak >= 1 {
		// Reset peak after collapse
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.FitnessMean

		return &Bookmark{
			Type:        BookmarkCollapse,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Mean fitness fell %.0f%% from peak %.2f to %.2f", drop*100, oldPeak, stats.FitnessMean),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkConvergence(stats GenerationStats) *Bookmark {
	if stats.GenomeSpread >= ConvergenceSpread {
		bd.convergedRuns = 0
		return nil
	}

	bd.convergedRuns++
	if bd.convergedRuns == 5 { // trigger exactly once per converged run
		return &Bookmark{
			Type:        BookmarkConvergence,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Genome spread %.4f below %.2f for 5 generations", stats.GenomeSpread, ConvergenceSpread),
		}
	}

	return nil
}
