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

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-retail-report/internal/charts"
	"github.com/pgEdge/pgedge-retail-report/internal/config"
	"github.com/pgEdge/pgedge-retail-report/internal/db"
	"github.com/pgEdge/pgedge-retail-report/internal/logging"
	"github.com/pgEdge/pgedge-retail-report/internal/report"
	"github.com/pgEdge/pgedge-retail-report/internal/retail"
)

var (
	reportQueries   []string
	reportLoad      bool
	reportDescribe  bool
	reportOutputDir string
	reportFormat    string
	reportWidth     int
	reportHeight    int
	reportShow      bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the query catalog and render charts",
	Long: `Run each catalog query against the loaded transactions, print its
result as a table and write its chart to the output directory. Queries
run one at a time in catalog order; the first failure stops the run.

Example:
  pgedge-retail-report report --connection "postgres://..."
  pgedge-retail-report report --query yearly_sales --query city_sales --format svg
  pgedge-retail-report report --load --describe --show`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringSliceVar(&reportQueries, "query", nil,
		"run only the named queries (repeatable, see 'queries')")
	reportCmd.Flags().BoolVar(&reportLoad, "load", false,
		"load the CSV snapshot before reporting")
	reportCmd.Flags().BoolVar(&reportDescribe, "describe", false,
		"print a dataset overview before the queries")
	reportCmd.Flags().StringVar(&reportOutputDir, "output-dir", "",
		"directory for chart images (default: charts)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "",
		"chart format: png or svg")
	reportCmd.Flags().IntVar(&reportWidth, "width", 0,
		"chart width in pixels")
	reportCmd.Flags().IntVar(&reportHeight, "height", 0,
		"chart height in pixels")
	reportCmd.Flags().BoolVar(&reportShow, "show", false,
		"open each chart in the system viewer and wait for it to close")
	addLoadFlags(reportCmd)
}

func applyReportFlags(c *config.Config) {
	if len(reportQueries) > 0 {
		c.Report.Queries = reportQueries
	}
	if reportLoad {
		c.Report.LoadFirst = true
	}
	if reportDescribe {
		c.Report.Describe = true
	}
	if reportOutputDir != "" {
		c.Report.OutputDir = reportOutputDir
	}
	if reportFormat != "" {
		c.Report.Format = reportFormat
	}
	if reportWidth > 0 {
		c.Report.Width = reportWidth
	}
	if reportHeight > 0 {
		c.Report.Height = reportHeight
	}
	if reportShow {
		c.Report.Show = true
	}
	applyLoadFlags(c)
}

func runReport(cmd *cobra.Command, args []string) error {
	applyReportFlags(cfg)

	// Validate configuration
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	// Resolve the query list before connecting so typos fail fast
	defs, err := report.Select(cfg.Report.Queries)
	if err != nil {
		return err
	}

	format, err := charts.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Report.LoadFirst {
		if _, err := loadSnapshot(ctx, pool, cfg.Load); err != nil {
			return err
		}
	}

	exists, err := retail.TableExists(ctx, pool)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s does not exist; run 'pgedge-retail-report load' first", retail.TableName)
	}

	out := cmd.OutOrStdout()

	if cfg.Report.Describe {
		overview, err := retail.Describe(ctx, pool)
		if err != nil {
			return fmt.Errorf("failed to describe dataset: %w", err)
		}
		if _, err := overview.WriteTo(out); err != nil {
			return err
		}
	}

	presenter := charts.NewPresenter(cfg.Report.OutputDir, charts.Options{
		Format: format,
		Width:  cfg.Report.Width,
		Height: cfg.Report.Height,
	}, cfg.Report.Show)

	logging.Info().
		Int("queries", len(defs)).
		Str("output_dir", cfg.Report.OutputDir).
		Str("format", string(format)).
		Msg("Running report")

	runner := report.NewRunner(pool, out, presenter)
	if err := runner.Run(ctx, defs); err != nil {
		return err
	}

	logging.Info().Msg("Report complete")
	return nil
}
