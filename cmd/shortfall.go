package cmd

import (
	"github.com/parityscope/parityscope/core"
	"github.com/parityscope/parityscope/internal/contract"
	"github.com/spf13/cobra"
)

// shortfallCmd computes raw signed shortfalls for every burden key.
var shortfallCmd = &cobra.Command{
	Use:   "shortfall [predictions-file]",
	Short: "Show the raw shortfall (predicted minus burden) for every subgroup.",
	Long: `Compute predicted minus burden for every subgroup in the reference table,
independent of the point rubric.

This is the diagnostic view: it includes every burden key even when the
payload has no prediction for it, rendering those rows as unscored rather
than zero.

Examples:
  # Shortfall table for a predictions file
  parityscope shortfall predictions.json

  # Shortfalls against mortality burden, as CSV
  parityscope shortfall predictions.json --basis mortality --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteShortfall(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot compute shortfalls", err)
		}
	},
}
