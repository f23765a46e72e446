package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleResult builds a small enriched result with one scored and one
// unscored row.
func sampleResult() *schema.EnrichedDiversityResult {
	return &schema.EnrichedDiversityResult{
		Label:      contract.AdequateValue,
		GapSummary: "Female (+42%)",
		Gaps:       []schema.Gap{{Subgroup: schema.KeyFemale, Gap: 0.42}},
		DiversityResult: schema.DiversityResult{
			EquityTotal:    15,
			DiversityScore: 71.4,
			DomainTotals: map[schema.Domain]int{
				schema.RaceDomain: 9,
				schema.SexDomain:  3,
				schema.AgeDomain:  3,
			},
			Breakdown: []schema.BreakdownRow{
				{
					Subgroup:  schema.KeyFemale,
					Predicted: fptr(0.478),
					Burden:    0.058,
					RawPDR:    fptr(8.24),
					CappedPDR: fptr(1.0),
					Score:     0,
					Domain:    schema.SexDomain,
				},
				{
					Subgroup: schema.KeyMale,
					Burden:   0.078,
					Score:    0,
					Domain:   schema.SexDomain,
				},
			},
		},
	}
}

func TestWriteScoreTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Precision: 2, Width: 120, HistoryBackend: schema.SQLiteBackend}

	require.NoError(t, writeScoreTable(&buf, sampleResult(), cfg, 5*time.Millisecond))
	out := buf.String()

	assert.Contains(t, out, "Female (%)")
	assert.Contains(t, out, "47.80%")
	// The unscored male row renders the missing marker, not a zero.
	assert.Contains(t, out, missingValue)
	assert.Contains(t, out, "Equity total: 15.0/21")
	assert.Contains(t, out, "Diversity score: 71.4/100 (Adequate)")
	assert.Contains(t, out, "Largest gaps: Female (+42%)")
	assert.Contains(t, out, "History backend: sqlite")
}

func TestWriteScoreTableSortPDR(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Precision: 2, Width: 120, SortPDR: true}

	result := sampleResult()
	require.NoError(t, writeScoreTable(&buf, result, cfg, time.Millisecond))

	// Chart ordering must not mutate the result itself.
	assert.Equal(t, schema.KeyFemale, result.Breakdown[0].Subgroup)
}

func TestWriteCSVScoreRows(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVScoreRows(w, sampleResult(), 2))
	w.Flush()

	r := csv.NewReader(strings.NewReader(buf.String()))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"subgroup", "predicted", "burden", "pdr_raw", "pdr", "score", "domain"}, records[0])
	assert.Equal(t, []string{"female_pct", "0.4780", "0.0580", "8.24", "1.00", "0", "sex"}, records[1])
	// Absent values are empty cells.
	assert.Equal(t, []string{"male_pct", "", "0.0780", "", "", "0", "sex"}, records[2])
}
