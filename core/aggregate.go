package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/parityscope/parityscope/schema"
)

// Engine scores predicted enrollment proportions against a fixed rubric.
// It holds no mutable state after construction, so a single Engine is
// safe for concurrent use.
type Engine struct {
	rubric schema.Rubric
}

// NewEngine validates the rubric and returns a scoring engine. The
// rubric is deep-copied, so later mutation of the caller's copy cannot
// affect scoring.
func NewEngine(rubric schema.Rubric) (*Engine, error) {
	if err := rubric.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rubric: %w", err)
	}
	return &Engine{rubric: rubric.Clone()}, nil
}

// Rubric returns a copy of the engine's rubric.
func (e *Engine) Rubric() schema.Rubric {
	return e.rubric.Clone()
}

// EquityScore computes the 21-point equity score with a per-subgroup
// breakdown. Subgroups are visited in fixed domain order (race, sex,
// age) and within each domain in the rubric's group-list order, so the
// breakdown is byte-identical across calls with identical inputs. The
// optional override substitutes denominators for this call only.
//
// A breakdown row is emitted for every rubric key regardless of how
// sparse preds is. Missing predictions and non-positive denominators
// yield nil PDRs and score 0; the call never fails.
func (e *Engine) EquityScore(preds schema.Proportions, override schema.BurdenOverride) *schema.EquityResult {
	result := &schema.EquityResult{
		DomainTotals: make(map[schema.Domain]int, len(schema.DomainOrder)),
	}

	for _, domain := range schema.DomainOrder {
		domainSum := 0

		for _, key := range e.rubric.Groups[domain] {
			trialVal := preds.Get(key)

			denom := e.rubric.Burden[key]
			if override != nil {
				if alt, ok := override[key]; ok {
					denom = alt
				}
			}

			row := scoreSubgroup(key, domain, trialVal, denom)
			domainSum += row.Score
			result.Breakdown = append(result.Breakdown, row)
		}

		// Cap each domain at its point budget so a misconfigured caller
		// that duplicates subgroups cannot inflate the total.
		result.DomainTotals[domain] = min(domainSum, e.rubric.DomainMax[domain])
		result.Total += float64(result.DomainTotals[domain])
	}

	return result
}

// scoreSubgroup builds the breakdown row for one (predicted, burden) pair.
func scoreSubgroup(key schema.SubgroupKey, domain schema.Domain, trialVal *float64, denom float64) schema.BreakdownRow {
	var pdrRaw, pdrCap *float64
	if trialVal != nil && denom > 0 {
		raw := *trialVal / denom
		capped := math.Min(raw, 1.0)
		pdrRaw = &raw
		pdrCap = &capped
	}

	return schema.BreakdownRow{
		Subgroup:  key,
		Predicted: trialVal,
		Burden:    denom,
		RawPDR:    pdrRaw,
		CappedPDR: pdrCap,
		Score:     ScorePDR(pdrRaw),
		Domain:    domain,
	}
}

// burdenKeysInOrder lists every burden-table key: the domain keys in
// domain-then-declaration order, then any extra keys sorted by name.
func burdenKeysInOrder(r schema.Rubric) []schema.SubgroupKey {
	keys := r.AllKeys()
	seen := make(map[schema.SubgroupKey]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}

	var extra []schema.SubgroupKey
	for k := range r.Burden {
		if _, ok := seen[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(keys, extra...)
}

// DiversityScore computes the equity score and normalizes it to 0-100,
// along with a shortfall row (predicted minus burden, nil when the
// prediction is absent) for every key in the burden table. Shortfalls
// are a raw diagnostic and do not feed the point total.
func (e *Engine) DiversityScore(preds schema.Proportions, override schema.BurdenOverride) *schema.DiversityResult {
	equity := e.EquityScore(preds, override)

	result := &schema.DiversityResult{
		EquityTotal:    equity.Total,
		DiversityScore: equity.Total / float64(schema.TotalPoints) * 100.0,
		DomainTotals:   equity.DomainTotals,
		Breakdown:      equity.Breakdown,
	}

	// Shortfalls cover the whole burden table, not just the scored
	// domains, in a fixed order. The per-call override applies here the
	// same way it does to PDR denominators.
	for _, key := range burdenKeysInOrder(e.rubric) {
		trialVal := preds.Get(key)
		denom := e.rubric.Burden[key]
		if override != nil {
			if alt, ok := override[key]; ok {
				denom = alt
			}
		}

		var shortfall *float64
		if trialVal != nil {
			s := *trialVal - denom
			shortfall = &s
		}

		result.Shortfalls = append(result.Shortfalls, schema.ShortfallRow{
			Subgroup:  key,
			Predicted: trialVal,
			Burden:    denom,
			Shortfall: shortfall,
		})
	}

	return result
}
