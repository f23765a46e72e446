package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScoreResults outputs a scoring run, dispatching based on the
// output format configured.
func (ow *OutWriter) WriteScoreResults(result *schema.EnrichedDiversityResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVScoreRows(csvWriter, result, cfg.Precision)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(w, result, cfg, duration)
		}, "Wrote table")
	}
}

// writeScoreTable generates and writes the human-readable breakdown table.
func writeScoreTable(w io.Writer, result *schema.EnrichedDiversityResult, cfg *contract.Config, duration time.Duration) error {
	fmtPct, fmtRatio := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Subgroup", "Predicted", "Burden", "PDR", "Score", "Domain"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	rows := result.Breakdown
	if cfg.SortPDR {
		rows = schema.ChartOrder(rows)
	}

	maxLabel := getMaxTableLabelWidth(cfg)
	var data [][]string
	for _, row := range rows {
		burden := row.Burden
		data = append(data, []string{
			contract.TruncateLabel(labelFor(row.Subgroup), maxLabel),
			fmtPct(row.Predicted),
			fmtPct(&burden),
			fmtRatio(row.RawPDR),
			strconv.Itoa(row.Score),
			string(row.Domain),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary footer: domain totals, the 21-point total, and the 0-100
	// diversity score with its label.
	for _, domain := range schema.DomainOrder {
		if _, err := fmt.Fprintf(w, "%s: %d/%d  ", domain, result.DomainTotals[domain], domainMaxFor(domain)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nEquity total: %.1f/%d\n", result.EquityTotal, schema.TotalPoints); err != nil {
		return err
	}
	label := contract.GetPlainLabel(result.DiversityScore)
	if cfg.UseColor {
		label = contract.GetColorLabel(result.DiversityScore)
	}
	if _, err := fmt.Fprintf(w, "Diversity score: %.1f/100 (%s)\n", result.DiversityScore, label); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Largest gaps: %s\n", result.GapSummary); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scored in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// labelFor picks the table label for a subgroup.
func labelFor(key schema.SubgroupKey) string {
	if label, ok := schema.DisplayLabels[key]; ok {
		return label
	}
	return string(key)
}

// domainMaxFor returns the shipped point budget for a domain, used only
// for footer display.
func domainMaxFor(domain schema.Domain) int {
	return schema.DefaultRubric().DomainMax[domain]
}

// writeCSVScoreRows writes the breakdown in CSV format. Absent values
// are empty cells, never zeros.
func writeCSVScoreRows(w *csv.Writer, result *schema.EnrichedDiversityResult, precision int) error {
	header := []string{
		"subgroup",
		"predicted",
		"burden",
		"pdr_raw",
		"pdr",
		"score",
		"domain",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range result.Breakdown {
		burden := row.Burden
		rec := []string{
			string(row.Subgroup),
			csvOptional(row.Predicted, precision+2),
			csvOptional(&burden, precision+2),
			csvOptional(row.RawPDR, precision),
			csvOptional(row.CappedPDR, precision),
			strconv.Itoa(row.Score),
			string(row.Domain),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
