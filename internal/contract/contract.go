// Package contract provides interfaces and shared utilities for the sifarish CLI's internal architecture.
package contract

import (
	"time"

	"github.com/vanadhikar/sifarish/schema"
)

// ClaimSource loads claim and scheme collections from some storage. The CLI
// uses file-backed loading; tests substitute fixtures.
type ClaimSource interface {
	// LoadClaims reads the claim population from the given path.
	LoadClaims(path string) ([]schema.Claim, error)

	// LoadSchemes reads a scheme catalog from the given path.
	LoadSchemes(path string) ([]schema.Scheme, error)
}

// RunStore defines the interface for tracking recommendation runs and their
// output rows. This allows the persistence layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalClaims int) error

	// RecordRow stores one recommendation row for a run.
	RecordRow(runID int64, row *schema.RecommendationRow) error

	// GetStatus returns status information about the run store.
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns returns every recorded run.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRows returns every recorded recommendation row.
	GetAllRows() ([]schema.RowRecord, error)

	// Clear removes all recorded runs and rows.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
