package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// rubricRow is the flattened per-subgroup view of a rubric used for
// JSON and CSV output.
type rubricRow struct {
	Subgroup  schema.SubgroupKey `json:"subgroup"`
	Domain    schema.Domain      `json:"domain"`
	Burden    float64            `json:"burden"`
	DomainMax int                `json:"domain_max"`
}

// WriteRubric outputs the active scoring rubric, dispatching based on
// the output format configured.
func (ow *OutWriter) WriteRubric(rubric *schema.Rubric, basis schema.BurdenBasis, cfg *contract.Config) error {
	rows := flattenRubric(rubric)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, map[string]any{
				"basis":        basis,
				"total_points": schema.TotalPoints,
				"subgroups":    rows,
			})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVRubricRows(csvWriter, rows)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRubricTable(w, rows, basis, cfg)
		}, "Wrote table")
	}
}

// flattenRubric expands a rubric into per-subgroup rows in domain order.
func flattenRubric(rubric *schema.Rubric) []rubricRow {
	var rows []rubricRow
	for _, domain := range schema.DomainOrder {
		for _, key := range rubric.Groups[domain] {
			rows = append(rows, rubricRow{
				Subgroup:  key,
				Domain:    domain,
				Burden:    rubric.Burden[key],
				DomainMax: rubric.DomainMax[domain],
			})
		}
	}
	return rows
}

// writeRubricTable generates and writes the human-readable rubric table.
func writeRubricTable(w io.Writer, rows []rubricRow, basis schema.BurdenBasis, cfg *contract.Config) error {
	fmtPct, _ := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Subgroup", "Domain", "Burden", "Domain Max"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := getMaxTableLabelWidth(cfg)
	var data [][]string
	for _, row := range rows {
		burden := row.Burden
		data = append(data, []string{
			contract.TruncateLabel(labelFor(row.Subgroup), maxLabel),
			string(row.Domain),
			fmtPct(&burden),
			strconv.Itoa(row.DomainMax),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Basis: %s. Total points: %d\n", basis, schema.TotalPoints)
	return err
}

// writeCSVRubricRows writes the rubric rows in CSV format.
func writeCSVRubricRows(w *csv.Writer, rows []rubricRow) error {
	header := []string{"subgroup", "domain", "burden", "domain_max"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			string(row.Subgroup),
			string(row.Domain),
			fmt.Sprintf("%.3f", row.Burden),
			strconv.Itoa(row.DomainMax),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
