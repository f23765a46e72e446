package schema

import "fmt"

// TotalPoints is the maximum equity score across all three domains.
const TotalPoints = 21

// Rubric is the static scoring configuration: the reference-burden table,
// the per-domain subgroup lists (ordered), and the per-domain point caps.
// It is injected into the engine at construction time; the engine treats
// it as read-only for its lifetime. Alternate burden definitions are
// applied per call via BurdenOverride, never by mutating a Rubric.
type Rubric struct {
	Burden    map[SubgroupKey]float64
	Groups    map[Domain][]SubgroupKey
	DomainMax map[Domain]int
}

// DefaultRubric returns the CVD disease-prevalence rubric: 4 race groups
// (12 points), 2 sex groups (6 points), 1 age group (3 points). Each call
// returns a fresh deep copy, so callers cannot leak mutations into later
// scoring runs.
func DefaultRubric() Rubric {
	return Rubric{
		Burden: map[SubgroupKey]float64{
			KeyWhite:  0.090, // ~9.0% of White adults have CVD
			KeyBlack:  0.116, // ~11.6% of Black adults have CVD
			KeyAsian:  0.043, // ~4.3% of Asian adults have CVD
			KeyAIAN:   0.099, // ~9.9% of AI/AN adults have CVD
			KeyFemale: 0.058, // ~5.8% of women have CVD
			KeyMale:   0.078, // ~7.8% of men have CVD
			KeyAge65:  0.240, // ~24% of adults >=65 have CVD
		},
		Groups: map[Domain][]SubgroupKey{
			RaceDomain: {KeyWhite, KeyBlack, KeyAsian, KeyAIAN},
			SexDomain:  {KeyFemale, KeyMale},
			AgeDomain:  {KeyAge65},
		},
		DomainMax: map[Domain]int{
			RaceDomain: 12,
			SexDomain:  6,
			AgeDomain:  3,
		},
	}
}

// MortalitySexBurden is the alternate sex burden defined as the sex
// distribution of CVD deaths (Mosca et al., Circulation 2011;123:1243).
// Women represent 52.6% of CVD deaths in the United States. Returned as
// a fresh copy for use with BurdenOverride.
func MortalitySexBurden() BurdenOverride {
	return BurdenOverride{
		KeyFemale: 0.526,
		KeyMale:   0.474,
	}
}

// OverrideForBasis returns the burden override matching a basis, or nil
// for the default prevalence basis.
func OverrideForBasis(basis BurdenBasis) BurdenOverride {
	if basis == MortalityBasis {
		return MortalitySexBurden()
	}
	return nil
}

// Validate checks the rubric for configuration errors. These are
// programming errors, not runtime conditions: a rubric whose domain
// maxima do not sum to TotalPoints would silently break the 0-100
// normalization, so construction fails instead.
func (r Rubric) Validate() error {
	sum := 0
	for _, d := range DomainOrder {
		groups, ok := r.Groups[d]
		if !ok || len(groups) == 0 {
			return fmt.Errorf("rubric domain %q has no subgroups", d)
		}
		maxPts, ok := r.DomainMax[d]
		if !ok || maxPts <= 0 {
			return fmt.Errorf("rubric domain %q has invalid max %d", d, maxPts)
		}
		sum += maxPts
		for _, key := range groups {
			if _, ok := r.Burden[key]; !ok {
				return fmt.Errorf("rubric subgroup %q has no burden entry", key)
			}
		}
	}
	if sum != TotalPoints {
		return fmt.Errorf("rubric domain maxima sum to %d, want %d", sum, TotalPoints)
	}
	return nil
}

// AllKeys returns every subgroup key across the three domains, in
// domain-then-declaration order.
func (r Rubric) AllKeys() []SubgroupKey {
	var keys []SubgroupKey
	for _, d := range DomainOrder {
		keys = append(keys, r.Groups[d]...)
	}
	return keys
}

// Clone returns a deep copy of the rubric.
func (r Rubric) Clone() Rubric {
	out := Rubric{
		Burden:    make(map[SubgroupKey]float64, len(r.Burden)),
		Groups:    make(map[Domain][]SubgroupKey, len(r.Groups)),
		DomainMax: make(map[Domain]int, len(r.DomainMax)),
	}
	for k, v := range r.Burden {
		out.Burden[k] = v
	}
	for d, groups := range r.Groups {
		out.Groups[d] = append([]SubgroupKey(nil), groups...)
	}
	for d, m := range r.DomainMax {
		out.DomainMax[d] = m
	}
	return out
}
