//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-retail-report/internal/charts"
	"github.com/pgEdge/pgedge-retail-report/internal/logging"
	"github.com/pgEdge/pgedge-retail-report/internal/sales"
)

var (
	summaryDatabaseURL string
	summaryChartPath   string
	summaryShow        bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the sales summary and write its chart",
	Long: `Compute total quantity, total revenue and discounted revenue over the
sales table. A SQLite store without a sales table is created and seeded
with sample lines first; other stores must already have the table.

The store is taken from --database-url, then DB_URL (also read from .env),
then the config file, defaulting to sqlite:///sales.db.

Example:
  pgedge-retail-report summary
  DB_URL=postgres://user@host/shop pgedge-retail-report summary --chart sales.svg`,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryDatabaseURL, "database-url", "",
		"sales store URL (sqlite:///path.db or postgres://...)")
	summaryCmd.Flags().StringVar(&summaryChartPath, "chart", "",
		"summary chart path (default: sales_sql_demo/sales_summary.png)")
	summaryCmd.Flags().BoolVar(&summaryShow, "show", false,
		"open the chart in the system viewer and wait for it to close")
}

func runSummary(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if summaryDatabaseURL != "" {
		cfg.Summary.DatabaseURL = summaryDatabaseURL
	}
	if summaryChartPath != "" {
		cfg.Summary.ChartPath = summaryChartPath
	}
	if summaryShow {
		cfg.Summary.Show = true
	}

	// Validate configuration
	if err := cfg.ValidateSummary(); err != nil {
		return err
	}

	format, name, err := chartTarget(cfg.Summary.ChartPath)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	store, err := sales.Open(ctx, cfg.Summary.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := sales.SeedIfNeeded(ctx, store); err != nil {
		return err
	}

	sum, err := sales.Summarize(ctx, store)
	if err != nil {
		return err
	}

	if _, err := sum.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}

	opts := charts.DefaultOptions()
	opts.Format = format
	presenter := charts.NewPresenter(filepath.Dir(cfg.Summary.ChartPath), opts, cfg.Summary.Show)
	if err := presenter.SaveAs(ctx, sum.ChartSpec(name), cfg.Summary.ChartPath); err != nil {
		return err
	}

	logging.Debug().
		Str("store", store.Location().Driver).
		Msg("Summary complete")
	return nil
}

// chartTarget derives the image format and chart name from a file path.
func chartTarget(path string) (charts.Format, string, error) {
	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)
	if ext == "" {
		return "", "", fmt.Errorf("chart path %q has no .png or .svg extension", path)
	}
	format, err := charts.ParseFormat(strings.ToLower(ext[1:]))
	if err != nil {
		return "", "", err
	}
	return format, name, nil
}
