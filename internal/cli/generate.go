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

	"github.com/pgEdge/pgedge-retail-report/internal/datagen"
	"github.com/pgEdge/pgedge-retail-report/internal/logging"
)

var (
	generateOutput string
	generateRows   int
	generateSeed   uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic transactions CSV",
	Long: `Write a CSV in the snapshot's column layout filled with synthetic
transactions, so that load and report can be tried without the real
dataset. A non-zero --seed makes the output reproducible.

Example:
  pgedge-retail-report generate --rows 50000 --seed 42`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateOutput, "output", "",
		"CSV file to write (default: Retail_Transactions_Dataset.csv)")
	generateCmd.Flags().IntVar(&generateRows, "rows", 0,
		"number of transactions (default: 10000)")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0,
		"random seed (0 = random)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if generateOutput != "" {
		cfg.Generate.Output = generateOutput
	}
	if generateRows > 0 {
		cfg.Generate.Rows = generateRows
	}
	if generateSeed > 0 {
		cfg.Generate.Seed = generateSeed
	}

	// Validate configuration
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	opts := datagen.DefaultOptions()
	opts.Rows = cfg.Generate.Rows
	opts.Seed = cfg.Generate.Seed

	logging.Info().
		Str("output", cfg.Generate.Output).
		Int("rows", opts.Rows).
		Uint64("seed", opts.Seed).
		Msg("Generating transactions")

	n, err := datagen.WriteFile(ctx, cfg.Generate.Output, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s\n", n, cfg.Generate.Output)
	return nil
}
