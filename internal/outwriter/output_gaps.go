package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// GapReport bundles the ranked gaps with their one-line summary.
type GapReport struct {
	Gaps    []schema.Gap `json:"gaps"`
	Summary string       `json:"summary"`
}

// WriteGapResults outputs the largest-gaps ranking, dispatching based on
// the output format configured.
func (ow *OutWriter) WriteGapResults(report *GapReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVGapRows(csvWriter, report.Gaps, cfg.Precision)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGapTable(w, report, cfg)
		}, "Wrote table")
	}
}

// writeGapTable generates and writes the human-readable gap ranking.
func writeGapTable(w io.Writer, report *GapReport, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Subgroup", "Gap", "Direction"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := getMaxTableLabelWidth(cfg)
	var data [][]string
	for i, g := range report.Gaps {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateLabel(labelFor(g.Subgroup), maxLabel),
			fmt.Sprintf("%+.*f%%", cfg.Precision, g.Gap*100),
			gapDirection(g.Gap),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Summary: %s\n", report.Summary)
	return err
}

// gapDirection names the side of parity a gap falls on.
func gapDirection(gap float64) string {
	switch {
	case gap > 0:
		return "over-represented"
	case gap < 0:
		return "under-represented"
	default:
		return "at parity"
	}
}

// writeCSVGapRows writes the gap ranking in CSV format.
func writeCSVGapRows(w *csv.Writer, gaps []schema.Gap, precision int) error {
	header := []string{"rank", "subgroup", "gap", "abs_gap", "direction"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, g := range gaps {
		rec := []string{
			strconv.Itoa(i + 1),
			string(g.Subgroup),
			fmt.Sprintf("%.*f", precision+2, g.Gap),
			fmt.Sprintf("%.*f", precision+2, math.Abs(g.Gap)),
			gapDirection(g.Gap),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
