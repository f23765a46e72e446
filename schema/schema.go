// Package schema has configs, models and constants for all parts of parityscope.
package schema

import "time"

// Proportions maps canonical subgroup keys to predicted enrollment shares
// in [0,1]. A nil value means the upstream model produced no estimate for
// that subgroup; this is distinct from a legitimate 0.
type Proportions map[SubgroupKey]*float64

// Get returns the predicted share for a key, or nil when the key is
// missing or explicitly unknown.
func (p Proportions) Get(key SubgroupKey) *float64 {
	if p == nil {
		return nil
	}
	return p[key]
}

// Clone returns a deep copy so callers can merge or mutate freely.
func (p Proportions) Clone() Proportions {
	out := make(Proportions, len(p))
	for k, v := range p {
		if v == nil {
			out[k] = nil
			continue
		}
		val := *v
		out[k] = &val
	}
	return out
}

// BurdenOverride substitutes alternate reference-burden denominators for
// a single scoring call. Keys absent from the override fall back to the
// rubric's default burden table.
type BurdenOverride map[SubgroupKey]float64

// BreakdownRow is the audit record for one scored subgroup. Nil pointers
// mark values that could not be computed, so downstream layers can render
// "unscored" distinctly from a genuine zero.
type BreakdownRow struct {
	Subgroup  SubgroupKey `json:"subgroup"`
	Predicted *float64    `json:"predicted"`
	Burden    float64     `json:"burden"`
	RawPDR    *float64    `json:"pdr_raw"`
	CappedPDR *float64    `json:"pdr"`
	Score     int         `json:"score"`
	Domain    Domain      `json:"domain"`
}

// EquityResult is the output of one 21-point equity scoring call.
// Breakdown rows appear in domain-then-declaration order (race, sex, age;
// within a domain, the rubric's group-list order).
type EquityResult struct {
	Total        float64        `json:"total"`
	DomainTotals map[Domain]int `json:"domain_totals"`
	Breakdown    []BreakdownRow `json:"breakdown"`
}

// ShortfallRow is a raw signed-gap diagnostic for one burden-table key.
// It is independent of the 0-3 point rubric.
type ShortfallRow struct {
	Subgroup  SubgroupKey `json:"subgroup"`
	Predicted *float64    `json:"predicted"`
	Burden    float64     `json:"burden"`
	Shortfall *float64    `json:"shortfall"`
}

// DiversityResult bundles the equity score with its 0-100 normalization
// and the per-key shortfall table.
type DiversityResult struct {
	EquityTotal    float64        `json:"equity_total"`
	DiversityScore float64        `json:"diversity_score"`
	DomainTotals   map[Domain]int `json:"domain_totals"`
	Breakdown      []BreakdownRow `json:"breakdown"`
	Shortfalls     []ShortfallRow `json:"shortfalls"`
}

// Gap is one entry in the largest-gaps ranking: a signed fraction
// difference between predicted share and reference burden (not a ratio).
type Gap struct {
	Subgroup SubgroupKey `json:"subgroup"`
	Gap      float64     `json:"gap"`
}

// ScoringRunRecord captures one recorded scoring run in the history store.
type ScoringRunRecord struct {
	RunID          int64      `json:"run_id"`
	RunTime        time.Time  `json:"run_time"`
	Basis          string     `json:"basis"`
	EquityTotal    float64    `json:"equity_total"`
	DiversityScore float64    `json:"diversity_score"`
	PayloadJSON    *string    `json:"payload_json"`
	RunDurationMs  *int32     `json:"run_duration_ms"`
	EndTime        *time.Time `json:"end_time"`
}

// SubgroupScoreRecord captures one breakdown row of a recorded run.
type SubgroupScoreRecord struct {
	RunID     int64     `json:"run_id"`
	Subgroup  string    `json:"subgroup"`
	Domain    string    `json:"domain"`
	Predicted *float64  `json:"predicted"`
	Burden    float64   `json:"burden"`
	RawPDR    *float64  `json:"pdr_raw"`
	CappedPDR *float64  `json:"pdr"`
	Score     int       `json:"score"`
	RunTime   time.Time `json:"run_time"`
}
