package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanadhikar/sifarish/schema"
)

func TestRecommendationRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pschema := parquet.SchemaOf(new(RecommendationRun))
	require.NotNil(t, pschema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"total_claims",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := pschema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestRecommendationRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pschema := parquet.SchemaOf(new(RecommendationRecord))
	require.NotNil(t, pschema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"recommendation_id",
		"claim_id",
		"holder_name",
		"location",
		"score",
		"priority",
		"top_scheme_id",
		"top_scheme_name",
		"top_scheme_score",
		"scheme_count",
		"created_at",
	}

	for _, colName := range expectedColumns {
		col, ok := pschema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteRecommendationRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "runs.parquet")

	now := time.Now()
	endTime := now.Add(30 * time.Second)
	durationMs := int32(30000)
	configParams := `{"claims_path":"/data/claims.json","sort_key":"score"}`

	data := []RecommendationRun{
		{RunID: 1, StartTime: now, EndTime: &endTime, RunDurationMs: &durationMs, TotalClaims: 120, ConfigParams: &configParams},
		{RunID: 2, StartTime: now, TotalClaims: 0}, // nullable fields unset
	}

	err := WriteRecommendationRunsParquet(data, outputPath)
	require.NoError(t, err)

	// Verify file was created and is non-empty
	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteRecommendationRecordsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "recommendations.parquet")

	holder := "Soma Majhi"
	topID := "pm-kisan"
	topName := "PM-KISAN"
	topScore := 0.82

	data := []RecommendationRecord{
		{
			RunID:            1,
			RecommendationID: "rec-1",
			ClaimID:          "FRA-001",
			HolderName:       &holder,
			Location:         "Bhamragad, Gadchiroli, Maharashtra",
			Score:            0.82,
			Priority:         "high",
			TopSchemeID:      &topID,
			TopSchemeName:    &topName,
			TopSchemeScore:   &topScore,
			SchemeCount:      2,
			CreatedAt:        time.Now(),
		},
		{
			RunID:            1,
			RecommendationID: "rec-2",
			ClaimID:          "FRA-002",
			Location:         "unknown",
			Score:            0.32,
			Priority:         "low",
			CreatedAt:        time.Now(),
		},
	}

	err := WriteRecommendationRecordsParquet(data, outputPath)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	end := now.Add(time.Second)
	duration := int32(1000)
	params := `{"state":"Odisha"}`

	records := []schema.RunRecord{
		{RunID: 7, StartTime: now, EndTime: &end, RunDurationMs: &duration, TotalClaims: 42, ConfigParams: &params},
	}

	converted := ConvertRunRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, int32(42), converted[0].TotalClaims)
	assert.Equal(t, &params, converted[0].ConfigParams)
}

func TestConvertRowRecords(t *testing.T) {
	holder := "Budhri Bai"
	records := []schema.RowRecord{
		{RunID: 7, RecommendationID: "rec-9", ClaimID: "FRA-010", HolderName: &holder, Location: "Kanker, Kanker, Chhattisgarh", Score: 0.55, Priority: "medium", SchemeCount: 1, CreatedAt: time.Now()},
	}

	converted := ConvertRowRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, "rec-9", converted[0].RecommendationID)
	assert.Equal(t, &holder, converted[0].HolderName)
	assert.Equal(t, "medium", converted[0].Priority)
}
