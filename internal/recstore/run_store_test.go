package recstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanadhikar/sifarish/schema"
)

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	err = store.EndRun(1, time.Now(), 10)
	assert.NoError(t, err)

	err = store.RecordRow(1, &schema.RecommendationRow{ID: "rec-1", ClaimID: "claim-1"})
	assert.NoError(t, err)

	err = store.Clear()
	assert.NoError(t, err)

	err = store.Close()
	assert.NoError(t, err)
}

func TestRunStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginRun
	startTime := time.Now()
	configParams := map[string]any{
		"claims_path": "/data/claims.json",
		"sort_key":    "score",
		"state":       "Maharashtra",
	}
	runID, err := store.BeginRun(startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	// Test RecordRow
	row := &schema.RecommendationRow{
		ID:         "rec-1",
		ClaimID:    "FRA-001",
		HolderName: "Soma Majhi",
		Location:   "Bhamragad, Gadchiroli, Maharashtra",
		Score:      0.82,
		Priority:   schema.HighPriority,
		SuggestedSchemes: []schema.SchemeMatch{
			{SchemeID: "pm-kisan", SchemeName: "PM-KISAN", Score: 0.82},
			{SchemeID: "mgnrega", SchemeName: "MGNREGA", Score: 0.61},
		},
	}
	err = store.RecordRow(runID, row)
	assert.NoError(t, err)

	// Test EndRun
	err = store.EndRun(runID, time.Now(), 1)
	assert.NoError(t, err)

	// Verify run record round-trip
	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, int32(1), runs[0].TotalClaims)
	require.NotNil(t, runs[0].EndTime)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "claims_path")

	// Verify recommendation record round-trip
	rows, err := store.GetAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "rec-1", rows[0].RecommendationID)
	assert.Equal(t, "FRA-001", rows[0].ClaimID)
	require.NotNil(t, rows[0].HolderName)
	assert.Equal(t, "Soma Majhi", *rows[0].HolderName)
	assert.Equal(t, string(schema.HighPriority), rows[0].Priority)
	require.NotNil(t, rows[0].TopSchemeID)
	assert.Equal(t, "pm-kisan", *rows[0].TopSchemeID)
	assert.Equal(t, int32(2), rows[0].SchemeCount)
}

func TestRunStore_MultipleRows(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		row := &schema.RecommendationRow{
			ID:       string(rune('a' + i)),
			ClaimID:  "claim",
			Location: "unknown",
			Priority: schema.LowPriority,
		}
		require.NoError(t, store.RecordRow(runID, row))
	}

	rows, err := store.GetAllRows()
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestRunStore_Status(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, int64(1), status.TableSizes[runsTable])
	assert.Equal(t, int64(0), status.TableSizes[recommendationsTable])
}

func TestRunStore_Clear(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordRow(runID, &schema.RecommendationRow{ID: "rec-1", ClaimID: "c", Location: "unknown", Priority: schema.LowPriority}))

	require.NoError(t, store.Clear())

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	rows, err := store.GetAllRows()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("sifarish_runs"))
	assert.NoError(t, validateTableName("_tmp"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("bad-name"))
	assert.Error(t, validateTableName("1table"))
	assert.Error(t, validateTableName("drop table;"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "\"sifarish_runs\"", quoteTableName("sifarish_runs", schema.SQLiteBackend))
	assert.Equal(t, "`sifarish_runs`", quoteTableName("sifarish_runs", schema.MySQLBackend))
	assert.Equal(t, "\"sifarish_runs\"", quoteTableName("sifarish_runs", schema.PostgreSQLBackend))
}
