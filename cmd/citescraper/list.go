package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"CiteScraper/internal/domain"
)

var (
	listBullet  bool
	listDialect string
)

func init() {
	listCmd.Flags().BoolVar(&listBullet, "bullet", false, "Render an unnumbered list")
	listCmd.Flags().StringVar(&listDialect, "dialect", "", "Output dialect: latex, markdown, html")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list SHEET CATEGORY",
	Short: "Print the rows of one category as list markup",
	Long: `Load SHEET and print the rows whose category equals CATEGORY exactly.
Author names wrapped in **double asterisks** are underlined and bolded.

Examples:
  citescraper list pubs journal
  citescraper list teaching invited --bullet --dialect markdown`,
	Args: cobra.ExactArgs(2),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	formatter, err := application.Formatter(listDialect)
	if err != nil {
		return err
	}

	style := domain.StyleOrdered
	if listBullet {
		style = domain.StyleBullet
	}

	records := application.Records.Load(cmd.Context(), args[0])
	fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderFiltered(records, args[1], style))
	return nil
}
