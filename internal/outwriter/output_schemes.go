package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// schemeDistribution is one catalog entry paired with its recommendation count.
type schemeDistribution struct {
	SchemeID    string  `json:"scheme_id"`
	SchemeName  string  `json:"scheme_name"`
	Ministry    string  `json:"ministry,omitempty"`
	Count       int     `json:"count"`
	ShareOfRows float64 `json:"share_of_rows"`
}

// WriteSchemeResults outputs the scheme distribution, dispatching based on the
// output format configured.
func WriteSchemeResults(catalog []schema.Scheme, stats schema.Stats, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	dist := buildSchemeDistribution(catalog, stats)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, dist)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"scheme_id", "scheme_name", "ministry", "count", "share_of_rows"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, d := range dist {
					rec := []string{d.SchemeID, d.SchemeName, d.Ministry, strconv.Itoa(d.Count), fmtFloat(d.ShareOfRows)}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSchemeTable(dist, stats, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// buildSchemeDistribution joins the catalog with per-scheme counts, sorted by
// count descending then name for a stable listing.
func buildSchemeDistribution(catalog []schema.Scheme, stats schema.Stats) []schemeDistribution {
	dist := make([]schemeDistribution, 0, len(catalog))
	for _, s := range catalog {
		count := stats.ByScheme[s.Name]
		share := 0.0
		if stats.Total > 0 {
			share = float64(count) / float64(stats.Total)
		}
		dist = append(dist, schemeDistribution{
			SchemeID:    s.ID,
			SchemeName:  s.Name,
			Ministry:    s.Ministry,
			Count:       count,
			ShareOfRows: share,
		})
	}
	sort.SliceStable(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].SchemeName < dist[j].SchemeName
	})
	return dist
}

// writeSchemeTable generates and writes the human-readable distribution table.
func writeSchemeTable(dist []schemeDistribution, stats schema.Stats, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Scheme", "Ministry", "Claims", "Share"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxText := GetMaxTableTextWidth(cfg)
	var data [][]string
	for _, d := range dist {
		data = append(data, []string{
			contract.TruncateText(d.SchemeName, maxText),
			contract.TruncateText(d.Ministry, maxText),
			strconv.Itoa(d.Count),
			fmtFloat(d.ShareOfRows),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Distribution over %d claims (%d eligible)\n", stats.Total, stats.Eligible)
	return err
}

// WriteRunResults outputs recorded run history, dispatching based on the
// output format configured.
func WriteRunResults(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"run_id", "start_time", "end_time", "duration_ms", "total_claims"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, r := range runs {
					rec := []string{
						strconv.FormatInt(r.RunID, 10),
						r.StartTime.Format("2006-01-02 15:04:05"),
						formatOptionalTime(r.EndTime),
						formatOptionalInt32(r.RunDurationMs),
						strconv.Itoa(int(r.TotalClaims)),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(runs, w)
		}, "Wrote table")
	}
}

// writeRunTable generates and writes the human-readable run history table.
func writeRunTable(runs []schema.RunRecord, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "Started", "Ended", "Duration (ms)", "Claims"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime.Format("2006-01-02 15:04:05"),
			formatOptionalTime(r.EndTime),
			formatOptionalInt32(r.RunDurationMs),
			strconv.Itoa(int(r.TotalClaims)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Recorded %d runs\n", len(runs))
	return err
}
