package main

import (
	"github.com/spf13/cobra"

	"CiteScraper/internal/domain"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Scrape the Scholar page of the first publication with an id_scholar",
	Long: `Exploratory diagnostics: loads the pubs sheet, picks the first row with an
id_scholar value, fetches its Scholar citation page and prints the anchor
texts found in citation blocks and the number of "cited by" segments.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	records := application.Records.Load(cmd.Context(), domain.SheetPublications)

	report, ok := application.Links.Inspect(cmd.Context(), records)
	if !ok {
		return nil
	}
	return report.Print(cmd.OutOrStdout())
}
