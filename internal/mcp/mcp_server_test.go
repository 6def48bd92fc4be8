package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanadhikar/sifarish/internal/claimio"
	"github.com/vanadhikar/sifarish/internal/contract"
	mcp_internal "github.com/vanadhikar/sifarish/internal/mcp"
	"github.com/vanadhikar/sifarish/schema"
)

func writeClaimsFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claims.json")
	content := `[
		{"id": "FRA-001", "holder_name": "Soma Majhi", "land_area": "1.5 acres",
		 "village": "Bhamragad", "district": "Gadchiroli", "state": "Maharashtra",
		 "claim_type": "Individual Forest Rights (IFR)", "forest_produce": ["tendu"]},
		{"id": "FRA-002", "holder_name": "Budhri Bai", "land_area": 0.8,
		 "village": "Kanker", "district": "Kanker", "state": "Chhattisgarh",
		 "claim_type": "Individual Forest Rights (IFR)"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func baseConfigFor(claimsPath string) *contract.Config {
	return &contract.Config{
		ClaimsPath: claimsPath,
		SortKey:    schema.SortByScore,
		SortDir:    schema.SortDesc,
		Page:       1,
		PageSize:   20,
		Limit:      25,
		Precision:  2,
		Params:     schema.DefaultRuleParams(),
	}
}

func TestMCPServer_GetRecommendations(t *testing.T) {
	claimsPath := writeClaimsFixture(t)
	s := mcp_internal.NewMCPServer(baseConfigFor(claimsPath), claimio.NewFileSource())

	tool := s.GetTool("get_recommendations")
	require.NotNil(t, tool, "Tool get_recommendations should exist")

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "get_recommendations",
			Arguments: map[string]any{
				"state": "Maharashtra",
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var payload struct {
		Rows  []schema.RecommendationRow `json:"rows"`
		Stats schema.Stats               `json:"stats"`
	}
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &payload))
	require.Len(t, payload.Rows, 1)
	assert.Equal(t, "FRA-001", payload.Rows[0].ClaimID)
	assert.Equal(t, 1, payload.Stats.Total)
}

func TestMCPServer_GetLocationOptions(t *testing.T) {
	claimsPath := writeClaimsFixture(t)
	s := mcp_internal.NewMCPServer(baseConfigFor(claimsPath), claimio.NewFileSource())

	tool := s.GetTool("get_location_options")
	require.NotNil(t, tool, "Tool get_location_options should exist")

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "get_location_options",
			Arguments: map[string]any{},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var options schema.LocationOptions
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &options))
	assert.Equal(t, []string{"Chhattisgarh", "Maharashtra"}, options.States)
}

func TestMCPServer_BadClaimsPath(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfigFor("/nonexistent/claims.json"), claimio.NewFileSource())

	tool := s.GetTool("get_village_stats")
	require.NotNil(t, tool, "Tool get_village_stats should exist")

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "get_village_stats",
			Arguments: map[string]any{},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	assert.True(t, res.IsError, "The response should indicate an error state")
}
