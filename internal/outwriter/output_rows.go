package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRecommendationResults outputs recommendation rows, dispatching based on
// the output format configured.
func WriteRecommendationResults(rows []schema.RecommendationRow, stats schema.Stats, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRowJSONResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRowCSVResults(rows, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRowTable(rows, stats, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeRowJSONResults handles opening the file and calling the JSON writer.
func writeRowJSONResults(rows []schema.RecommendationRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForRows(w, rows, cfg)
	}, "Wrote JSON")
}

// writeRowCSVResults handles opening the file and calling the CSV writer.
func writeRowCSVResults(rows []schema.RecommendationRow, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"claim_id",
			"holder",
			"location",
			"score",
			"priority",
			"beneficiaries",
			"schemes",
			"top_scheme_reason",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForRows(csvWriter, rows, cfg, fmtFloat)
		})
	}, "Wrote CSV")
}

// writeRowTable generates and writes the human-readable table.
func writeRowTable(rows []schema.RecommendationRow, stats schema.Stats, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Holder", "Location", "Score", "Priority", "Schemes"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	// 3. Populate Rows
	maxText := GetMaxTableTextWidth(cfg)
	rankOffset := (cfg.Page - 1) * cfg.PageSize
	var data [][]string
	for i, r := range rows {
		data = append(data, []string{
			strconv.Itoa(rankOffset + i + 1), // Rank
			contract.TruncateText(holderOrClaim(&r), maxText),
			contract.TruncateText(r.Location, maxText),
			fmtFloat(r.Score),
			priorityLabel(r.Priority, cfg),
			formatSchemeList(r.SuggestedSchemes, fmtFloat),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	if _, err := fmt.Fprintf(writer, "Showing %d of %d claims (eligible: %d, page %d of %d)\n",
		len(rows), stats.Total, stats.Eligible, cfg.Page, stats.TotalPages); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Run completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForRows writes recommendation rows in CSV format.
func writeCSVResultsForRows(w *csv.Writer, rows []schema.RecommendationRow, cfg *contract.Config, fmtFloat func(float64) string) error {
	rankOffset := (cfg.Page - 1) * cfg.PageSize
	for i, r := range rows {
		var topReason string
		if len(r.SuggestedSchemes) > 0 {
			topReason = r.SuggestedSchemes[0].Reason
		}
		rec := []string{
			strconv.Itoa(rankOffset + i + 1), // Rank
			r.ClaimID,
			r.HolderName,
			r.Location,
			fmtFloat(r.Score),
			contract.GetPlainLabel(r.Priority),
			strconv.Itoa(r.Beneficiaries),
			formatSchemeList(r.SuggestedSchemes, fmtFloat),
			topReason,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForRows writes recommendation rows in JSON format.
func writeJSONResultsForRows(w io.Writer, rows []schema.RecommendationRow, cfg *contract.Config) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONRecommendationRow struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.RecommendationRow
	}

	rankOffset := (cfg.Page - 1) * cfg.PageSize
	output := make([]JSONRecommendationRow, len(rows))
	for i, r := range rows {
		output[i] = JSONRecommendationRow{
			Rank:              rankOffset + i + 1,
			Label:             contract.GetPlainLabel(r.Priority),
			RecommendationRow: r,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// holderOrClaim prefers the holder name, falling back to the claim id.
func holderOrClaim(r *schema.RecommendationRow) string {
	if r.HolderName != "" {
		return r.HolderName
	}
	return r.ClaimID
}

// priorityLabel picks the colored or plain variant based on config.
func priorityLabel(p schema.PriorityLevel, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(p)
	}
	return contract.GetPlainLabel(p)
}

// formatSchemeList renders suggested schemes as "Name (score)" pairs.
func formatSchemeList(matches []schema.SchemeMatch, fmtFloat func(float64) string) string {
	if len(matches) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, fmt.Sprintf("%s (%s)", m.SchemeName, fmtFloat(m.Score)))
	}
	return strings.Join(parts, "; ")
}
