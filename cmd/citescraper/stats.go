package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsProfile string

func init() {
	statsCmd.Flags().StringVar(&statsProfile, "profile", "", "Scholar profile id (default from config)")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print citation count, h-index and i10-index of the profile",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	profileURL, err := application.ProfileURL()
	if statsProfile != "" {
		profileURL, err = application.ProfileURLFor(statsProfile)
	}
	if err != nil {
		return err
	}

	stats := application.Stats.Fetch(cmd.Context(), profileURL)
	fmt.Fprintln(cmd.OutOrStdout(), stats.String())
	return nil
}
