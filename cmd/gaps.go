package cmd

import (
	"github.com/parityscope/parityscope/core"
	"github.com/parityscope/parityscope/internal/contract"
	"github.com/spf13/cobra"
)

// gapsCmd ranks the largest representation gaps.
var gapsCmd = &cobra.Command{
	Use:   "gaps [predictions-file]",
	Short: "Rank the largest gaps between predicted enrollment and burden.",
	Long: `Rank subgroups by the absolute difference between predicted enrollment
share and reference disease-burden share.

Unlike the 0-3 rubric scores, gaps are raw signed fractions: a positive gap
means the subgroup is over-represented relative to its burden, a negative
gap means it is under-represented. Subgroups with no prediction are skipped.

Examples:
  # Show the three largest gaps (default)
  parityscope gaps predictions.json

  # Show more gaps against the mortality burden table
  parityscope gaps predictions.json --top-k 7 --basis mortality

  # Machine-readable ranking
  parityscope gaps predictions.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGaps(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot rank gaps", err)
		}
	},
}
