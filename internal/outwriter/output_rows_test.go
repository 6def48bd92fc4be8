package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/schema"
)

func sampleRows() []schema.RecommendationRow {
	return []schema.RecommendationRow{
		{
			ID:         "rec-1",
			ClaimID:    "FRA-001",
			HolderName: "Soma Majhi",
			Location:   "Bhamragad, Gadchiroli, Maharashtra",
			Score:      0.82,
			Priority:   schema.HighPriority,
			SuggestedSchemes: []schema.SchemeMatch{
				{SchemeID: "pm-kisan", SchemeName: "PM-KISAN", Score: 0.82, Reason: "Landholding suits income support"},
				{SchemeID: "mgnrega", SchemeName: "MGNREGA", Score: 0.61, Reason: "Small holding favors wage employment"},
			},
			Beneficiaries: 1,
		},
		{
			ID:            "rec-2",
			ClaimID:       "FRA-002",
			Location:      "unknown",
			Score:         0.32,
			Priority:      schema.LowPriority,
			Beneficiaries: 1,
		},
	}
}

func testConfig() *contract.Config {
	return &contract.Config{
		Page:         1,
		PageSize:     20,
		Precision:    2,
		Width:        120,
		StoreBackend: schema.NoneBackend,
	}
}

func TestWriteJSONResultsForRows(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForRows(&buf, sampleRows(), testConfig())
	require.NoError(t, err)

	// Parse the JSON to verify structure
	var result []map[string]any
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "FRA-001", result[0]["claim_id"])
	assert.Equal(t, 0.82, result[0]["score"])
	assert.Equal(t, "High", result[0]["label"])
	assert.Equal(t, float64(2), result[1]["rank"])
	assert.Equal(t, "Low", result[1]["label"])
}

func TestWriteJSONResultsForRowsRankOffset(t *testing.T) {
	cfg := testConfig()
	cfg.Page = 3
	cfg.PageSize = 10

	var buf bytes.Buffer
	err := writeJSONResultsForRows(&buf, sampleRows(), cfg)
	require.NoError(t, err)

	var result []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, float64(21), result[0]["rank"])
}

func TestWriteCSVResultsForRows(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForRows(w, sampleRows(), testConfig(), fmtFloat)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "FRA-001")
	assert.Contains(t, lines[0], "Soma Majhi")
	assert.Contains(t, lines[0], "0.82")
	assert.Contains(t, lines[0], "High")
	assert.Contains(t, lines[0], "PM-KISAN (0.82); MGNREGA (0.61)")
	assert.Contains(t, lines[1], "FRA-002")
	assert.Contains(t, lines[1], "Low")
}

func TestWriteRowTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	stats := schema.Stats{Total: 2, Eligible: 1, TotalPages: 1}

	var buf bytes.Buffer
	err := writeRowTable(sampleRows(), stats, testConfig(), fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Soma Majhi")
	assert.Contains(t, out, "PM-KISAN")
	assert.Contains(t, out, "Showing 2 of 2 claims (eligible: 1, page 1 of 1)")
	assert.Contains(t, out, "Store backend: none")
}

func TestFormatSchemeList(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	assert.Equal(t, "-", formatSchemeList(nil, fmtFloat))

	matches := []schema.SchemeMatch{{SchemeName: "Jal Jeevan Mission", Score: 0.5}}
	assert.Equal(t, "Jal Jeevan Mission (0.50)", formatSchemeList(matches, fmtFloat))
}

func TestHolderOrClaim(t *testing.T) {
	row := schema.RecommendationRow{ClaimID: "FRA-003"}
	assert.Equal(t, "FRA-003", holderOrClaim(&row))
	row.HolderName = "Budhri Bai"
	assert.Equal(t, "Budhri Bai", holderOrClaim(&row))
}
