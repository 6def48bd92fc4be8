package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vanadhikar/sifarish/core"
	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	source  contract.ClaimSource
}

// applyLocationArgs copies the shared location arguments onto a cloned config.
func applyLocationArgs(cfg *contract.Config, request mcp.CallToolRequest) {
	if p := request.GetString("claims_path", ""); p != "" {
		cfg.ClaimsPath = p
	}
	if s := request.GetString("state", ""); s != "" {
		cfg.Filters.State = s
	}
	if d := request.GetString("district", ""); d != "" {
		cfg.Filters.District = d
	}
}

func (h *toolHandler) handleGetRecommendations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyLocationArgs(cfg, request)
	if v := request.GetString("village", ""); v != "" {
		cfg.Filters.Village = v
	}
	if id := request.GetString("scheme_id", ""); id != "" {
		cfg.Filters.SchemeID = id
	}
	if p := request.GetString("priority", ""); p != "" {
		cfg.Filters.Priority = schema.PriorityLevel(p)
	}
	if q := request.GetString("search", ""); q != "" {
		cfg.Filters.Search = q
	}
	if request.GetBool("only_eligible", false) {
		cfg.Filters.OnlyEligible = true
	}
	if s := request.GetString("sort", ""); s != "" {
		cfg.SortKey = schema.SortKey(s)
	}
	if p := request.GetInt("page", 0); p > 0 {
		cfg.Page = p
	}
	if ps := request.GetInt("page_size", 0); ps > 0 {
		cfg.PageSize = ps
	}

	qs, err := core.BuildQueryService(cfg, h.source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	response := struct {
		Rows  []schema.RecommendationRow `json:"rows"`
		Stats schema.Stats               `json:"stats"`
	}{
		Rows:  qs.Page(),
		Stats: qs.Stats(),
	}
	jsonData, _ := json.MarshalIndent(response, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetVillageStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyLocationArgs(cfg, request)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}

	qs, err := core.BuildQueryService(cfg, h.source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("village aggregation failed: %v", err)), nil
	}

	villages := core.RankVillages(qs.Aggregates(), cfg.Limit)
	jsonData, _ := json.MarshalIndent(villages, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSchemeDistribution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyLocationArgs(cfg, request)

	qs, err := core.BuildQueryService(cfg, h.source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("distribution failed: %v", err)), nil
	}

	response := struct {
		Catalog []schema.Scheme `json:"catalog"`
		Stats   schema.Stats    `json:"stats"`
	}{
		Catalog: qs.Catalog(),
		Stats:   qs.Stats(),
	}
	jsonData, _ := json.MarshalIndent(response, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetLocationOptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyLocationArgs(cfg, request)

	qs, err := core.BuildQueryService(cfg, h.source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("location lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(qs.Locations(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
