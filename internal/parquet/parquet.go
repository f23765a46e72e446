// Package parquet provides data structures and functions for exporting
// scoring-run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parityscope/parityscope/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoringRun represents a single scoring run with metadata.
// This struct maps to the parityscope_scoring_runs database table.
type ScoringRun struct {
	// RunID is the unique identifier for this scoring run
	RunID int64 `parquet:"run_id,snappy"`

	// RunTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	RunTime time.Time `parquet:"run_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// Basis names the reference-burden table used (prevalence or mortality)
	Basis string `parquet:"basis,snappy"`

	// EquityTotal is the 21-point equity total for the run
	EquityTotal float64 `parquet:"equity_total,snappy"`

	// DiversityScore is the 0-100 normalized diversity score
	DiversityScore float64 `parquet:"diversity_score,snappy"`

	// PayloadJSON contains the JSON-encoded prediction payload (nullable)
	PayloadJSON *string `parquet:"payload_json,optional,snappy"`
}

// SubgroupScore represents one scored subgroup within a run.
// This struct maps to the parityscope_run_subgroups database table.
type SubgroupScore struct {
	// RunID references the parent scoring run
	RunID int64 `parquet:"run_id,snappy"`

	// Subgroup is the canonical subgroup key (e.g. black_pct)
	Subgroup string `parquet:"subgroup,snappy"`

	// Domain is the demographic domain the subgroup belongs to
	Domain string `parquet:"domain,snappy"`

	// RunTime is when this subgroup was scored (stored as TIMESTAMP with nanosecond precision)
	RunTime time.Time `parquet:"run_time,snappy"`

	// Predicted is the predicted enrollment share (nullable)
	Predicted *float64 `parquet:"predicted,optional,snappy"`

	// Burden is the reference disease-burden share
	Burden float64 `parquet:"burden,snappy"`

	// RawPDR is the uncapped predicted-to-burden ratio (nullable)
	RawPDR *float64 `parquet:"pdr_raw,optional,snappy"`

	// CappedPDR is the ratio capped at 1.0 (nullable)
	CappedPDR *float64 `parquet:"pdr,optional,snappy"`

	// Score is the 0-3 parity score for this subgroup
	Score int32 `parquet:"score,snappy"`
}

// WriteScoringRunsParquet writes a slice of ScoringRun structs to a Parquet file.
func WriteScoringRunsParquet(data []ScoringRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ScoringRun struct tags
	writer := parquet.NewGenericWriter[ScoringRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSubgroupScoresParquet writes a slice of SubgroupScore structs to a Parquet file.
func WriteSubgroupScoresParquet(data []SubgroupScore, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SubgroupScore struct tags
	writer := parquet.NewGenericWriter[SubgroupScore](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertScoringRunRecords converts schema.ScoringRunRecord to ScoringRun for Parquet export.
func ConvertScoringRunRecords(records []schema.ScoringRunRecord) []ScoringRun {
	result := make([]ScoringRun, len(records))
	for i, record := range records {
		result[i] = ScoringRun{
			RunID:          record.RunID,
			RunTime:        record.RunTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			Basis:          record.Basis,
			EquityTotal:    record.EquityTotal,
			DiversityScore: record.DiversityScore,
			PayloadJSON:    record.PayloadJSON,
		}
	}
	return result
}

// ConvertSubgroupScoreRecords converts schema.SubgroupScoreRecord to SubgroupScore for Parquet export.
func ConvertSubgroupScoreRecords(records []schema.SubgroupScoreRecord) []SubgroupScore {
	result := make([]SubgroupScore, len(records))
	for i, record := range records {
		result[i] = SubgroupScore{
			RunID:     record.RunID,
			Subgroup:  record.Subgroup,
			Domain:    record.Domain,
			RunTime:   record.RunTime,
			Predicted: record.Predicted,
			Burden:    record.Burden,
			RawPDR:    record.RawPDR,
			CappedPDR: record.CappedPDR,
			Score:     int32(record.Score),
		}
	}
	return result
}
