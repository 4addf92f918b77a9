package main

import (
	"github.com/spf13/cobra"

	"CiteScraper/internal/domain"
)

func init() {
	rootCmd.AddCommand(sheetCmd)
}

var sheetCmd = &cobra.Command{
	Use:   "sheet SHEET",
	Short: "Dump a CV sheet as CSV",
	Long: `Load SHEET through the configured providers and write it as CSV.
Unreachable sheets print their empty schema header.

Examples:
  citescraper sheet pubs > pubs.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return domain.WriteCSV(cmd.OutOrStdout(), application.Records.Load(cmd.Context(), args[0]))
	},
}
