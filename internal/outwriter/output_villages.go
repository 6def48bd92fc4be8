package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteVillageResults outputs village aggregates, dispatching based on the
// output format configured.
func WriteVillageResults(villages []schema.VillageAggregate, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, villages)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"rank", "village", "district", "state", "claims", "avg_area", "water_index", "forest_produce", "priority"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVResultsForVillages(csvWriter, villages, fmtFloat)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVillageTable(villages, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeVillageTable generates and writes the human-readable village table.
func writeVillageTable(villages []schema.VillageAggregate, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Village", "District", "State", "Claims", "Avg Area", "Water", "Priority"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxText := GetMaxTableTextWidth(cfg)
	var data [][]string
	for i, v := range villages {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(v.Key.Village, maxText),
			contract.TruncateText(v.Key.District, maxText),
			contract.TruncateText(v.Key.State, maxText),
			strconv.Itoa(v.Count),
			fmtFloat(v.AvgArea),
			fmtFloat(v.WaterIndex),
			priorityLabel(v.PriorityLevel, cfg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	totalClaims := 0
	for _, v := range villages {
		totalClaims += v.Count
	}
	_, err := fmt.Fprintf(writer, "Showing %d villages covering %d claims\n", len(villages), totalClaims)
	return err
}

// writeCSVResultsForVillages writes village aggregates in CSV format.
func writeCSVResultsForVillages(w *csv.Writer, villages []schema.VillageAggregate, fmtFloat func(float64) string) error {
	for i, v := range villages {
		rec := []string{
			strconv.Itoa(i + 1),
			v.Key.Village,
			v.Key.District,
			v.Key.State,
			strconv.Itoa(v.Count),
			fmtFloat(v.AvgArea),
			fmtFloat(v.WaterIndex),
			strconv.FormatBool(v.HasForestProduce),
			string(v.PriorityLevel),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
