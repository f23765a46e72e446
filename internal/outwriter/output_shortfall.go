package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteShortfallResults outputs the per-subgroup shortfall table,
// dispatching based on the output format configured.
func (ow *OutWriter) WriteShortfallResults(rows []schema.ShortfallRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVShortfallRows(csvWriter, rows, cfg.Precision)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeShortfallTable(w, rows, cfg)
		}, "Wrote table")
	}
}

// writeShortfallTable generates and writes the human-readable shortfall table.
func writeShortfallTable(w io.Writer, rows []schema.ShortfallRow, cfg *contract.Config) error {
	fmtPct, _ := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Subgroup", "Predicted", "Burden", "Shortfall"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := getMaxTableLabelWidth(cfg)
	var data [][]string
	for _, row := range rows {
		burden := row.Burden
		data = append(data, []string{
			contract.TruncateLabel(labelFor(row.Subgroup), maxLabel),
			fmtPct(row.Predicted),
			fmtPct(&burden),
			fmtPct(row.Shortfall),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVShortfallRows writes the shortfall rows in CSV format. Absent
// values are empty cells, never zeros.
func writeCSVShortfallRows(w *csv.Writer, rows []schema.ShortfallRow, precision int) error {
	header := []string{"subgroup", "predicted", "burden", "shortfall"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		burden := row.Burden
		rec := []string{
			string(row.Subgroup),
			csvOptional(row.Predicted, precision+2),
			csvOptional(&burden, precision+2),
			csvOptional(row.Shortfall, precision+2),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
