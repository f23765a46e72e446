// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/parityscope/parityscope/internal/contract"
	"golang.org/x/term"
)

// missingValue renders an unscored cell. It is visually distinct from a
// numeric 0 so consumers can tell "not scored" from "scored zero".
const missingValue = "n/a"

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API
// for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// getMaxTableLabelWidth calculates the maximum width for subgroup labels
// in table output based on terminal width and table configuration.
func getMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with borders and padding:
	// Predicted + Burden + PDR + Score + Domain.
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		// The longest shipped label is 35 runes; anything wider is waste.
		return 40
	}
	return available
}
