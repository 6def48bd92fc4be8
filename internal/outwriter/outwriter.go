// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRecommendations prints recommendation rows using the configured output format.
func (ow *OutWriter) WriteRecommendations(rows []schema.RecommendationRow, stats schema.Stats, cfg *contract.Config, duration time.Duration) error {
	return WriteRecommendationResults(rows, stats, cfg, duration)
}

// WriteVillages prints village aggregates using the configured output format.
func (ow *OutWriter) WriteVillages(villages []schema.VillageAggregate, cfg *contract.Config) error {
	return WriteVillageResults(villages, cfg)
}

// WriteSchemes prints the scheme distribution using the configured output format.
func (ow *OutWriter) WriteSchemes(catalog []schema.Scheme, stats schema.Stats, cfg *contract.Config) error {
	return WriteSchemeResults(catalog, stats, cfg)
}

// WriteRuns prints recorded run history using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return WriteRunResults(runs, cfg)
}

// GetMaxTableTextWidth calculates the maximum width for holder and location
// cells in table output based on terminal width.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for Rank + Score + Priority + Schemes with borders/padding
	baseWidth := 50

	// Holder and location split the remainder evenly
	available := (termWidth - baseWidth) / 2
	if available < 12 {
		// Minimum reasonable text width
		return 12
	}
	if available > 40 {
		// Maximum text width to prevent overly wide tables
		return 40
	}
	return available
}
