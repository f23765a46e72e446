// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/parityscope/parityscope/schema"
)

// HistoryStore defines the interface for scoring-run history storage.
// This allows the persistence layer to be mocked for testing.
type HistoryStore interface {
	// BeginRun inserts a new run row and returns its ID.
	BeginRun(startTime time.Time, basis schema.BurdenBasis, payloadJSON string) (int64, error)

	// EndRun finalizes a run with its totals and duration.
	EndRun(runID int64, endTime time.Time, equityTotal, diversityScore float64) error

	// RecordSubgroupScores persists the breakdown rows for a run.
	RecordSubgroupScores(runID int64, runTime time.Time, rows []schema.BreakdownRow) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.ScoringRunRecord, error)

	// ListSubgroupScores returns all recorded subgroup rows.
	ListSubgroupScores() ([]schema.SubgroupScoreRecord, error)

	// Clear removes all history rows.
	Clear() error

	// Status reports connection state and table sizes.
	Status() (schema.HistoryStatus, error)

	// Close releases the underlying database handle.
	Close() error
}

// HistoryManager hands out the configured history store, or nil when
// history tracking is disabled.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}
