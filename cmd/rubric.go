package cmd

import (
	"github.com/parityscope/parityscope/core"
	"github.com/parityscope/parityscope/internal/contract"
	"github.com/spf13/cobra"
)

// rubricCmd displays the active scoring rubric.
var rubricCmd = &cobra.Command{
	Use:   "rubric",
	Short: "Display the scoring rubric: domains, burden shares, point budgets.",
	Long: `Show the rubric used to score enrollment equity.

Displays every subgroup with its demographic domain, its reference
disease-burden share for the selected basis, and the per-domain point
budget (race 12, sex 6, age 3; 21 total).

This is a static display that does not require a prediction payload.

Examples:
  # Show the default (prevalence) rubric
  parityscope rubric

  # Show the rubric with mortality-based sex burden
  parityscope rubric --basis mortality`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRubric(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot display rubric", err)
		}
	},
}
