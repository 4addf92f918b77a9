// Package main provides the citescraper CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"CiteScraper/internal/app"
	"CiteScraper/internal/config"
	"CiteScraper/internal/logging"
)

var (
	configPath  string
	logLevel    string
	application *app.Application
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citescraper",
	Short: "Render CV publication lists and Google Scholar statistics",
	Long: `citescraper reads the CV workbook (Google Sheets, its public CSV export,
or a SQL mirror) and Google Scholar, and renders list fragments for
inclusion in LaTeX, Markdown or HTML documents.

Source failures never abort a run: unreachable sheets render as
"No data available" and unreadable profiles as zero counts.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application == nil {
			return nil
		}
		return application.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $CITESCRAPER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := config.Load()
	if configPath != "" {
		cfg = config.LoadFile(configPath)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	a, err := app.New(cfg, logging.New(cfg.Logging.Level))
	if err != nil {
		return err
	}
	application = a
	return nil
}
