package cmd

import (
	"github.com/parityscope/parityscope/core"
	"github.com/parityscope/parityscope/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd performs a full equity scoring pass.
var scoreCmd = &cobra.Command{
	Use:   "score [predictions-file]",
	Short: "Score predicted enrollment against population disease burden.",
	Long: `Score a trial's predicted enrollment demographics on the 21-point equity rubric.

Each subgroup's predicted share is divided by its reference disease-burden
share to form a participation-to-disease ratio (PDR), which earns 0-3 points
for how close it sits to parity. Domain subtotals are capped (race 12,
sex 6, age 3), summed to at most 21 points, and normalized to a 0-100
diversity score.

Reads the payload from a JSON file, from stdin with "-", or entirely from
--set flags when no file is given. Subgroups the upstream model could not
estimate stay unscored rather than counting as zero.

Examples:
  # Score a predictions file
  parityscope score predictions.json

  # Score from stdin
  cat predictions.json | parityscope score -

  # Override a single subgroup and use mortality burden
  parityscope score predictions.json --set female_pct=0.48 --basis mortality

  # Export the breakdown to CSV for tracking
  parityscope score predictions.json --output csv --output-file breakdown.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot run scoring", err)
		}
	},
}
