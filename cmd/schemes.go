package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vanadhikar/sifarish/core"
	"github.com/vanadhikar/sifarish/internal/contract"
)

// schemesCmd summarizes scheme coverage over the claim set.
var schemesCmd = &cobra.Command{
	Use:   "schemes <claims-file>",
	Short: "Show how scheme suggestions distribute over the claims.",
	Long: `Summarize the scheme catalog against the claim set.

For each scheme the summary reports:
- Scheme id, name and administering ministry
- How many claims have it among their suggestions
- Its share of the evaluated claim set

Use this to spot under-used schemes and to size outreach campaigns.

Examples:
  # Distribution over all claims
  sifarish schemes claims.json

  # Coverage inside a single district
  sifarish schemes claims.json --district Bastar

  # Machine-readable output for reporting
  sifarish schemes claims.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSchemes(rootCtx, cfg, claimSource, runStore); err != nil {
			contract.LogFatal("Cannot run scheme summary", err)
		}
	},
}
