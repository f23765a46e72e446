package history

import (
	"errors"
	"fmt"

	"github.com/parityscope/parityscope/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of run history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("run history is not initialized")
	}

	// Check if there's any data to export
	status, err := store.Status()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scoring runs: %d\n", status.TotalRuns)
	fmt.Printf("Total subgroup records: %d\n", status.TableSizes[runSubgroupsTable])

	// Retrieve all scoring runs
	runs, err := store.ListRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve scoring runs: %w", err)
	}

	// Retrieve all subgroup scores
	subgroups, err := store.ListSubgroupScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve subgroup scores: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertScoringRunRecords(runs)
	parquetSubgroups := parquet.ConvertSubgroupScoreRecords(subgroups)

	// Write scoring runs to Parquet
	runsFile := outputFile + ".scoring_runs.parquet"
	if err := parquet.WriteScoringRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write scoring runs: %w", err)
	}
	fmt.Printf("Exported %d scoring runs to: %s\n", len(parquetRuns), runsFile)

	// Write subgroup scores to Parquet
	subgroupsFile := outputFile + ".run_subgroups.parquet"
	if err := parquet.WriteSubgroupScoresParquet(parquetSubgroups, subgroupsFile); err != nil {
		return fmt.Errorf("failed to write subgroup scores: %w", err)
	}
	fmt.Printf("Exported %d subgroup records to: %s\n", len(parquetSubgroups), subgroupsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
