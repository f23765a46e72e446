// Package core implements the equity scoring engine: the 0-3 parity
// ratio scorer, the 21-point domain aggregator, the 0-100 diversity
// score, and the representation gap analysis.
package core

import "math"

// Parity deviation thresholds for the 0-3 band, measured as distance
// from exact parity (PDR = 1.0) in either direction.
const (
	nearParityDiff = 0.2
	closeDiff      = 0.5
	farDiff        = 1.5
)

// ScorePDR converts a parity deviation ratio into a 0-3 equity score.
// The rule is bidirectional: both under- and over-representation move
// the ratio away from 1.0 and are penalized alike. A nil or non-positive
// ratio means the subgroup could not be scored and contributes 0.
func ScorePDR(pdr *float64) int {
	if pdr == nil || *pdr <= 0 {
		return 0
	}

	diff := math.Abs(*pdr - 1.0)

	switch {
	case diff <= nearParityDiff:
		return 3
	case diff <= closeDiff:
		return 2
	case diff <= farDiff:
		return 1
	default:
		return 0
	}
}
