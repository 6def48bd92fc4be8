// Package cmd defines the command-line interface for sifarish.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(villagesCmd)
	rootCmd.AddCommand(schemesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("schemes", "", "Path to a scheme catalog file (YAML or JSON)")
	rootCmd.PersistentFlags().String("state", "", "Filter claims by state (exact match)")
	rootCmd.PersistentFlags().String("district", "", "Filter claims by district (exact match)")
	rootCmd.PersistentFlags().String("village", "", "Filter claims by village (exact match)")
	rootCmd.PersistentFlags().String("tribe", "", "Filter claims by tribal group")
	rootCmd.PersistentFlags().String("claim-type", "", "Filter by claim type: community or individual")
	rootCmd.PersistentFlags().String("water", "", "Filter by village water level: high, medium or low")
	rootCmd.PersistentFlags().String("income", "", "Filter by income level: below-poverty, low or medium")
	rootCmd.PersistentFlags().String("priority", "", "Filter by priority tier: high, medium or low")
	rootCmd.PersistentFlags().StringP("search", "s", "", "Substring match on holder name, village, district or state")
	rootCmd.PersistentFlags().String("scheme", "", "Restrict recommendations to a single scheme id")
	rootCmd.PersistentFlags().Bool("eligible-only", false, "Only show claims with at least one eligible scheme")
	rootCmd.PersistentFlags().String("sort", string(schema.SortByScore), "Sort key: score, priority or name")
	rootCmd.PersistentFlags().String("order", string(schema.SortDesc), "Sort order: asc or desc")
	rootCmd.PersistentFlags().Int("page", 1, "Page number to display (1-based)")
	rootCmd.PersistentFlags().Int("page-size", contract.DefaultPageSize, "Number of rows per page")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultLimit, "Number of results for villages/schemes listings")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Write output to a file instead of stdout")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
