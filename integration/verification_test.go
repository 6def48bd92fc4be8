//go:build integration

// Package integration contains integration tests for sifarish.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecommendCSVVerification runs recommend with CSV output and verifies the
// rows against the input claim set.
func TestRecommendCSVVerification(t *testing.T) {
	claimsPath := writeClaimsFixture(t)
	outPath := filepath.Join(t.TempDir(), "ranking.csv")

	_, err := runSifarishCommand(t, "recommend", claimsPath,
		"--store-backend", "none", "--output", "csv", "--output-file", outPath)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	header := records[0]
	assert.Contains(t, header, "claim_id")
	assert.Contains(t, header, "priority")

	// One row per claim in the fixture.
	assert.Len(t, records[1:], 3)

	claimIdx := indexOf(header, "claim_id")
	seen := map[string]bool{}
	for _, rec := range records[1:] {
		seen[rec[claimIdx]] = true
	}
	for _, id := range []string{"FRA-001", "FRA-002", "FRA-003"} {
		assert.True(t, seen[id], "missing claim %s in CSV output", id)
	}
}

// TestRecommendJSONVerification verifies JSON output agrees with CSV output.
func TestRecommendJSONVerification(t *testing.T) {
	claimsPath := writeClaimsFixture(t)
	outPath := filepath.Join(t.TempDir(), "ranking.json")

	_, err := runSifarishCommand(t, "recommend", claimsPath,
		"--store-backend", "none", "--output", "json", "--output-file", outPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(raw, &rows))
	assert.Len(t, rows, 3)

	for _, row := range rows {
		score, ok := row["score"].(float64)
		require.True(t, ok, "score missing in %v", row)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

// TestFilteredRecommendVerification verifies facet filters against the fixture.
func TestFilteredRecommendVerification(t *testing.T) {
	claimsPath := writeClaimsFixture(t)

	out, err := runSifarishCommand(t, "recommend", claimsPath,
		"--store-backend", "none", "--state", "Chhattisgarh")
	require.NoError(t, err)

	assert.Contains(t, out, "Budhram")
	assert.False(t, strings.Contains(out, "Soma Majhi"), "filtered-out holder should not appear")
}

// indexOf returns the position of a column in the CSV header.
func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
