package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	buildOutDir  string
	buildDialect string
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "", "Output directory (default from config)")
	buildCmd.Flags().StringVar(&buildDialect, "dialect", "", "Output dialect: latex, markdown, html")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write every configured CV section as a fragment file",
	Long: `Render each section listed in the config, plus the citation summary line,
into one file per section.

Examples:
  citescraper build
  citescraper build --out cv/sections --dialect html`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	written, err := application.Run(cmd.Context(), buildOutDir, buildDialect)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
