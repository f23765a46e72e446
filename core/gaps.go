package core

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/parityscope/parityscope/schema"
)

// NoGapsMessage is returned by FormatGapSummary when nothing was scorable.
const NoGapsMessage = "No significant gaps detected."

// LargestGaps ranks representation gaps by magnitude. For every key with
// a non-nil prediction and a burden entry, the gap is the signed fraction
// predicted minus burden (not a ratio). Candidates are collected in the
// canonical key order before a stable sort on |gap| descending, so equal
// magnitudes always resolve in declaration order rather than map order.
// Returns at most topK entries.
func LargestGaps(preds schema.Proportions, burden map[schema.SubgroupKey]float64, topK int) []schema.Gap {
	if topK <= 0 {
		return nil
	}

	var gaps []schema.Gap
	for _, key := range candidateKeys(burden) {
		pred := preds.Get(key)
		if pred == nil {
			continue
		}
		gaps = append(gaps, schema.Gap{Subgroup: key, Gap: *pred - burden[key]})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return math.Abs(gaps[i].Gap) > math.Abs(gaps[j].Gap)
	})

	if len(gaps) > topK {
		gaps = gaps[:topK]
	}
	return gaps
}

// candidateKeys returns the burden keys in canonical order, with any
// non-canonical keys appended in sorted order.
func candidateKeys(burden map[schema.SubgroupKey]float64) []schema.SubgroupKey {
	var keys []schema.SubgroupKey
	for _, key := range schema.CategoryOrder {
		if _, ok := burden[key]; ok {
			keys = append(keys, key)
		}
	}

	var extra []schema.SubgroupKey
	for key := range burden {
		if !schema.IsCanonicalKey(key) {
			extra = append(extra, key)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(keys, extra...)
}

// FormatGapSummary renders ranked gaps as a one-line human summary such
// as "Asian (−3%), Black (+3%), Female (+42%)". Gaps are shown as whole
// percentage points with "+" for non-negative and a minus-sign glyph for
// negative.
func FormatGapSummary(gaps []schema.Gap) string {
	if len(gaps) == 0 {
		return NoGapsMessage
	}

	parts := make([]string, 0, len(gaps))
	for _, g := range gaps {
		sign := "+"
		if g.Gap < 0 {
			sign = "−"
		}
		pct := int(math.Round(math.Abs(g.Gap) * 100))
		parts = append(parts, fmt.Sprintf("%s (%s%d%%)", schema.ShortLabel(g.Subgroup), sign, pct))
	}
	return strings.Join(parts, ", ")
}
