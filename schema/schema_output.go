package schema

import "sort"

// EnrichedDiversityResult adds presentation data to a DiversityResult.
type EnrichedDiversityResult struct {
	Label      string `json:"label"`
	GapSummary string `json:"gap_summary"`
	Gaps       []Gap  `json:"largest_gaps"`
	DiversityResult
}

// ChartOrder returns a copy of the breakdown sorted by capped PDR
// ascending, so the most under-represented subgroups come first. Rows
// with no PDR sort last; ties keep domain/declaration order. The scoring
// core itself always emits declaration order; this is the presentation
// ordering used by chart consumers.
func ChartOrder(rows []BreakdownRow) []BreakdownRow {
	out := append([]BreakdownRow(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CappedPDR, out[j].CappedPDR
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}
