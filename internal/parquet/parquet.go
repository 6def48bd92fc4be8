// Package parquet provides data structures and functions for exporting
// recommendation run data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/vanadhikar/sifarish/schema"
)

// RecommendationRun represents a single recommendation run with metadata.
// This struct maps to the sifarish_runs database table.
type RecommendationRun struct {
	// RunID is the unique identifier for this recommendation run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalClaims is the number of claims processed in this run
	TotalClaims int32 `parquet:"total_claims,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RecommendationRecord represents one recommendation row from a run.
// This struct maps to the sifarish_recommendations database table.
type RecommendationRecord struct {
	// RunID references the parent recommendation run
	RunID int64 `parquet:"run_id,snappy"`

	// RecommendationID is the unique id assigned when the row was produced
	RecommendationID string `parquet:"recommendation_id,snappy"`

	// ClaimID is the originating claim
	ClaimID string `parquet:"claim_id,snappy"`

	// HolderName is the claim holder's display name (nullable)
	HolderName *string `parquet:"holder_name,optional,snappy"`

	// Location is the "village, district, state" display label
	Location string `parquet:"location,snappy"`

	// Score is the row's final score in [0,1]
	Score float64 `parquet:"score,snappy"`

	// Priority is the assigned urgency tier
	Priority string `parquet:"priority,snappy"`

	// TopSchemeID is the best-matching scheme id (nullable)
	TopSchemeID *string `parquet:"top_scheme_id,optional,snappy"`

	// TopSchemeName is the best-matching scheme name (nullable)
	TopSchemeName *string `parquet:"top_scheme_name,optional,snappy"`

	// TopSchemeScore is the best match's score (nullable)
	TopSchemeScore *float64 `parquet:"top_scheme_score,optional,snappy"`

	// SchemeCount is the number of suggested schemes for this claim
	SchemeCount int32 `parquet:"scheme_count,snappy"`

	// CreatedAt is when the row was recorded
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// WriteRecommendationRunsParquet writes a slice of RecommendationRun structs to a Parquet file.
func WriteRecommendationRunsParquet(data []RecommendationRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RecommendationRun struct tags
	writer := parquet.NewGenericWriter[RecommendationRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRecommendationRecordsParquet writes a slice of RecommendationRecord structs to a Parquet file.
func WriteRecommendationRecordsParquet(data []RecommendationRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RecommendationRecord struct tags
	writer := parquet.NewGenericWriter[RecommendationRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to RecommendationRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RecommendationRun {
	result := make([]RecommendationRun, len(records))
	for i, record := range records {
		result[i] = RecommendationRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalClaims:   record.TotalClaims,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRowRecords converts schema.RowRecord to RecommendationRecord for Parquet export.
func ConvertRowRecords(records []schema.RowRecord) []RecommendationRecord {
	result := make([]RecommendationRecord, len(records))
	for i, record := range records {
		result[i] = RecommendationRecord{
			RunID:            record.RunID,
			RecommendationID: record.RecommendationID,
			ClaimID:          record.ClaimID,
			HolderName:       record.HolderName,
			Location:         record.Location,
			Score:            record.Score,
			Priority:         record.Priority,
			TopSchemeID:      record.TopSchemeID,
			TopSchemeName:    record.TopSchemeName,
			TopSchemeScore:   record.TopSchemeScore,
			SchemeCount:      record.SchemeCount,
			CreatedAt:        record.CreatedAt,
		}
	}
	return result
}
