package core

import (
	"context"
	"sort"
	"time"

	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/internal/outwriter"
	"github.com/vanadhikar/sifarish/internal/parquet"
	"github.com/vanadhikar/sifarish/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, source contract.ClaimSource, store contract.RunStore) error

// BuildQueryService loads the claim population and scheme catalog from the
// configured paths and returns a query service primed with the config's
// filter, sort and pagination state.
func BuildQueryService(cfg *contract.Config, source contract.ClaimSource) (*QueryService, error) {
	claims, err := source.LoadClaims(cfg.ClaimsPath)
	if err != nil {
		return nil, err
	}

	var schemes []schema.Scheme
	if cfg.SchemesPath != "" {
		schemes, err = source.LoadSchemes(cfg.SchemesPath)
		if err != nil {
			return nil, err
		}
	}

	qs, err := NewQueryService(claims, schemes, cfg.Params)
	if err != nil {
		return nil, err
	}
	qs.SetFilters(cfg.Filters)
	qs.SetSort(cfg.SortKey, cfg.SortDir)
	qs.SetPageSize(cfg.PageSize)
	qs.SetPage(cfg.Page)
	return qs, nil
}

// ExecuteRecommend runs the recommendation pipeline and prints one page of
// results. It serves as the main entry point for the 'recommend' command.
func ExecuteRecommend(ctx context.Context, cfg *contract.Config, source contract.ClaimSource, store contract.RunStore) error {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		contract.LogRecommendHeader(cfg)
	}

	qs, err := BuildQueryService(cfg, source)
	if err != nil {
		return err
	}

	allRows := qs.Rows()
	pageRows := qs.Page()
	stats := qs.Stats()

	// Track the run; recording failures degrade to warnings so output
	// still reaches the caller.
	runID, err := store.BeginRun(start, runConfigParams(cfg))
	if err != nil {
		contract.LogWarn("beginning run", err)
	} else if runID > 0 {
		for i := range allRows {
			if err := store.RecordRow(runID, &allRows[i]); err != nil {
				contract.LogWarn("recording row", err)
				break
			}
		}
		if err := store.EndRun(runID, time.Now(), stats.Total); err != nil {
			contract.LogWarn("ending run", err)
		}
	}

	duration := time.Since(start)

	if cfg.Output == schema.ParquetOut {
		return writeRowsParquet(allRows, runID, cfg.OutputFile)
	}
	return outwriter.WriteRecommendationResults(pageRows, stats, cfg, duration)
}

// ExecuteVillages aggregates the claim population by village and prints the
// ranked listing. It serves as the main entry point for the 'villages' command.
func ExecuteVillages(ctx context.Context, cfg *contract.Config, source contract.ClaimSource, _ contract.RunStore) error {
	qs, err := BuildQueryService(cfg, source)
	if err != nil {
		return err
	}

	villages := RankVillages(qs.Aggregates(), cfg.Limit)
	return outwriter.WriteVillageResults(villages, cfg)
}

// ExecuteSchemes computes the scheme distribution over the filtered claim
// population. It serves as the main entry point for the 'schemes' command.
func ExecuteSchemes(ctx context.Context, cfg *contract.Config, source contract.ClaimSource, _ contract.RunStore) error {
	qs, err := BuildQueryService(cfg, source)
	if err != nil {
		return err
	}

	return outwriter.WriteSchemeResults(qs.Catalog(), qs.Stats(), cfg)
}

// RankVillages orders aggregates by priority tier, then member count, then
// key for stability, and caps the listing at limit when positive.
func RankVillages(aggs map[string]schema.VillageAggregate, limit int) []schema.VillageAggregate {
	villages := make([]schema.VillageAggregate, 0, len(aggs))
	for _, v := range aggs {
		villages = append(villages, v)
	}
	sort.SliceStable(villages, func(i, j int) bool {
		pi, pj := villages[i].PriorityLevel.Rank(), villages[j].PriorityLevel.Rank()
		if pi != pj {
			return pi > pj
		}
		if villages[i].Count != villages[j].Count {
			return villages[i].Count > villages[j].Count
		}
		return villages[i].Key.String() < villages[j].Key.String()
	})
	if limit > 0 && len(villages) > limit {
		villages = villages[:limit]
	}
	return villages
}

// runConfigParams captures the run configuration for store tracking.
func runConfigParams(cfg *contract.Config) map[string]any {
	params := map[string]any{
		"claims_path": cfg.ClaimsPath,
		"sort_key":    string(cfg.SortKey),
		"sort_dir":    string(cfg.SortDir),
		"page":        cfg.Page,
		"page_size":   cfg.PageSize,
	}
	if cfg.SchemesPath != "" {
		params["schemes_path"] = cfg.SchemesPath
	}
	if cfg.Filters.State != "" {
		params["state"] = cfg.Filters.State
	}
	if cfg.Filters.District != "" {
		params["district"] = cfg.Filters.District
	}
	if cfg.Filters.SchemeID != "" {
		params["scheme_id"] = cfg.Filters.SchemeID
	}
	if cfg.Filters.OnlyEligible {
		params["only_eligible"] = true
	}
	return params
}

// writeRowsParquet exports the full recommendation set as a Parquet file.
func writeRowsParquet(rows []schema.RecommendationRow, runID int64, outputFile string) error {
	if outputFile == "" {
		outputFile = "recommendations.parquet"
	}

	now := time.Now().UTC()
	records := make([]parquet.RecommendationRecord, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		record := parquet.RecommendationRecord{
			RunID:            runID,
			RecommendationID: r.ID,
			ClaimID:          r.ClaimID,
			Location:         r.Location,
			Score:            r.Score,
			Priority:         string(r.Priority),
			SchemeCount:      int32(len(r.SuggestedSchemes)),
			CreatedAt:        now,
		}
		if r.HolderName != "" {
			record.HolderName = &r.HolderName
		}
		if len(r.SuggestedSchemes) > 0 {
			top := r.SuggestedSchemes[0]
			record.TopSchemeID = &top.SchemeID
			record.TopSchemeName = &top.SchemeName
			record.TopSchemeScore = &top.Score
		}
		records = append(records, record)
	}
	return parquet.WriteRecommendationRecordsParquet(records, outputFile)
}
