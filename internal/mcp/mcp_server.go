// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/vanadhikar/sifarish/internal/contract"
)

// NewMCPServer initializes and configures the Sifarish MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, source contract.ClaimSource) *server.MCPServer {
	s := server.NewMCPServer(
		"Sifarish Recommendation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		source:  source,
	}

	// --- 1. Tool: get_recommendations ---
	s.AddTool(mcp.NewTool("get_recommendations",
		mcp.WithDescription("Generate scheme recommendations for forest rights claims, with filtering, sorting and pagination."),
		mcp.WithString("claims_path", mcp.Description("Path to the claims file (defaults to the configured path).")),
		mcp.WithString("state", mcp.Description("Filter by state name (exact match).")),
		mcp.WithString("district", mcp.Description("Filter by district name (exact match).")),
		mcp.WithString("village", mcp.Description("Filter by village name (exact match).")),
		mcp.WithString("scheme_id", mcp.Description("Score against a single scheme instead of the full catalog.")),
		mcp.WithString("priority", mcp.Description("Filter by village priority tier."), mcp.Enum("high", "medium", "low")),
		mcp.WithString("search", mcp.Description("Case-insensitive substring match on holder name, village, district and state.")),
		mcp.WithBoolean("only_eligible", mcp.Description("Drop claims with no eligible scheme match.")),
		mcp.WithString("sort", mcp.Description("Sort key (score, priority, name). Defaults to 'score'."), mcp.Enum("score", "priority", "name")),
		mcp.WithNumber("page", mcp.Description("Page number, 1-based.")),
		mcp.WithNumber("page_size", mcp.Description("Rows per page.")),
	), h.handleGetRecommendations)

	// --- 2. Tool: get_village_stats ---
	s.AddTool(mcp.NewTool("get_village_stats",
		mcp.WithDescription("Aggregate forest rights claims by village: claim counts, average landholding, water index and priority tier."),
		mcp.WithString("claims_path", mcp.Description("Path to the claims file.")),
		mcp.WithString("state", mcp.Description("Filter by state name.")),
		mcp.WithString("district", mcp.Description("Filter by district name.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of villages returned.")),
	), h.handleGetVillageStats)

	// --- 3. Tool: get_scheme_distribution ---
	s.AddTool(mcp.NewTool("get_scheme_distribution",
		mcp.WithDescription("Count how many claims each welfare scheme is recommended for."),
		mcp.WithString("claims_path", mcp.Description("Path to the claims file.")),
		mcp.WithString("state", mcp.Description("Filter by state name.")),
		mcp.WithString("district", mcp.Description("Filter by district name.")),
	), h.handleGetSchemeDistribution)

	// --- 4. Tool: get_location_options ---
	s.AddTool(mcp.NewTool("get_location_options",
		mcp.WithDescription("List the cascading location filter options (states, districts, villages, tribal groups) for the claim population."),
		mcp.WithString("claims_path", mcp.Description("Path to the claims file.")),
		mcp.WithString("state", mcp.Description("Scope districts and villages to this state.")),
		mcp.WithString("district", mcp.Description("Scope villages to this district.")),
	), h.handleGetLocationOptions)

	return s
}

// StartMCPServer starts the Sifarish MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, source contract.ClaimSource) error {
	s := NewMCPServer(baseCfg, source)
	return server.ServeStdio(s)
}
