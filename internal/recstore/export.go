package recstore

import (
	"errors"
	"fmt"

	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/internal/parquet"
)

// ExecuteStoreExport exports recorded run data to Parquet files.
func ExecuteStoreExport(store contract.RunStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total recommendation records: %d\n", status.TableSizes[recommendationsTable])

	// Retrieve all runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all recommendation rows
	rows, err := store.GetAllRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve recommendation rows: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetRows := parquet.ConvertRowRecords(rows)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRecommendationRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write recommendation rows to Parquet
	rowsFile := outputFile + ".recommendations.parquet"
	if err := parquet.WriteRecommendationRecordsParquet(parquetRows, rowsFile); err != nil {
		return fmt.Errorf("failed to write recommendation rows: %w", err)
	}
	fmt.Printf("Exported %d recommendation records to: %s\n", len(parquetRows), rowsFile)

	fmt.Println("Export complete. The Parquet files can be read by Spark, DuckDB, Pandas, and other tools.")

	return nil
}
