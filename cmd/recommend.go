package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vanadhikar/sifarish/core"
	"github.com/vanadhikar/sifarish/internal/contract"
)

// recommendCmd generates per-claim scheme recommendations.
var recommendCmd = &cobra.Command{
	Use:   "recommend <claims-file>",
	Short: "Rank claims with their suggested schemes and priority tiers.",
	Long: `Evaluate every claim against the scheme eligibility rules and rank the results.

Each claim is scored against the full scheme catalog, helping you:
- See which schemes a claim holder qualifies for, with match scores
- Read a plain-language reason for every suggested scheme
- Triage the backlog with high/medium/low priority tiers
- Slice the results by state, district, village, tribe or claim type
- Page through large claim sets without losing rank positions

Claims come from a JSON or CSV file. Pass --schemes to swap in your own
catalog; otherwise the built-in Central Sector Scheme set is used.

Examples:
  # Rank all claims in a district
  sifarish recommend claims.json --district Mandla

  # Only claim holders who qualify for at least one scheme
  sifarish recommend claims.json --eligible-only

  # Focus on a single scheme's potential beneficiaries
  sifarish recommend claims.json --scheme pm-kisan

  # Page through results sorted by holder name
  sifarish recommend claims.json --sort name --order asc --page 2

  # Export the full ranking to CSV for the dashboard team
  sifarish recommend claims.json --output csv --output-file ranking.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRecommend(rootCtx, cfg, claimSource, runStore); err != nil {
			contract.LogFatal("Cannot run recommendations", err)
		}
	},
}
