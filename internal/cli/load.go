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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-retail-report/internal/config"
	"github.com/pgEdge/pgedge-retail-report/internal/db"
	"github.com/pgEdge/pgedge-retail-report/internal/logging"
	"github.com/pgEdge/pgedge-retail-report/internal/retail"
)

var (
	loadCSVPath      string
	loadBatchSize    int
	loadDropExisting bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the transactions CSV into PostgreSQL",
	Long: `Create the retail_transactions table and copy the CSV snapshot into
it. Loading is skipped when the table already holds rows, so the command
can be run before every report. Use --drop-existing to reload.

Example:
  pgedge-retail-report load --csv Retail_Transactions_Dataset.csv --connection "postgres://..."`,
	RunE: runLoad,
}

func init() {
	addLoadFlags(loadCmd)
}

// addLoadFlags registers the flags shared by load and report --load.
func addLoadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&loadCSVPath, "csv", "",
		"transactions CSV file (default: Retail_Transactions_Dataset.csv)")
	cmd.Flags().IntVar(&loadBatchSize, "batch-size", 0,
		"rows per COPY batch")
	cmd.Flags().BoolVar(&loadDropExisting, "drop-existing", false,
		"drop the loaded table before loading")
}

func applyLoadFlags(c *config.Config) {
	if loadCSVPath != "" {
		c.Load.CSVPath = loadCSVPath
	}
	if loadBatchSize > 0 {
		c.Load.BatchSize = loadBatchSize
	}
	if loadDropExisting {
		c.Load.DropExisting = true
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	applyLoadFlags(cfg)

	// Validate configuration
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	res, err := loadSnapshot(ctx, pool, cfg.Load)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d transactions in %s\n", res.Rows, retail.TableName)
	return nil
}

func loadSnapshot(ctx context.Context, conn db.DB, lc config.LoadConfig) (retail.LoadResult, error) {
	logging.Info().
		Str("csv", lc.CSVPath).
		Bool("drop_existing", lc.DropExisting).
		Msg("Loading transactions")

	res, err := retail.Load(ctx, conn, lc.CSVPath, retail.LoadOptions{
		BatchSize:    lc.BatchSize,
		DropExisting: lc.DropExisting,
	})
	if err != nil {
		return res, fmt.Errorf("failed to load %s: %w", lc.CSVPath, err)
	}
	return res, nil
}
