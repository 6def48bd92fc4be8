package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vanadhikar/sifarish/core"
	"github.com/vanadhikar/sifarish/internal/contract"
)

// villagesCmd performs village-level aggregation.
var villagesCmd = &cobra.Command{
	Use:   "villages <claims-file>",
	Short: "Show villages ranked by aggregate claim priority.",
	Long: `Aggregate claims per village and rank the villages that need attention first.

For each village the aggregation reports:
- Number of claims and total/average land area
- Derived water index and forest produce presence
- The village priority tier implied by its claims

Use this view to plan field visits and target scheme saturation drives
at the village level rather than claim by claim.

Examples:
  # Top villages across the whole dataset
  sifarish villages claims.json

  # Limit to one state and widen the list
  sifarish villages claims.json --state "Madhya Pradesh" --limit 50

  # Feed the dashboard with JSON
  sifarish villages claims.json --output json --output-file villages.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVillages(rootCtx, cfg, claimSource, runStore); err != nil {
			contract.LogFatal("Cannot run village aggregation", err)
		}
	},
}
