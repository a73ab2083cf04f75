//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-retail-report/internal/db"
	"github.com/pgEdge/pgedge-retail-report/internal/logging"
	"github.com/pgEdge/pgedge-retail-report/internal/report"
	"github.com/pgEdge/pgedge-retail-report/internal/retail"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what has been loaded",
	Long: `Print the metadata recorded by the last load (source file, row count,
load time and tool version) together with the current row count.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	exists, err := db.MetadataExists(ctx, pool)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("database has not been loaded; run 'pgedge-retail-report load' first")
	}

	meta, err := db.GetAllMetadata(ctx, pool)
	if err != nil {
		return err
	}

	st, err := retail.CheckLoad(ctx, pool)
	if err != nil {
		return err
	}
	if !st.Consistent() {
		logging.Warn().
			Int64("recorded", st.Recorded).
			Int64("current", st.Current).
			Msg("Table row count differs from the last load; reload with --drop-existing")
	}

	report.WriteTable(cmd.OutOrStdout(), statusTable(meta, st.Current))
	return nil
}

func statusTable(meta map[string]string, rows int64) report.Table {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := report.Table{Header: []string{"Key", "Value"}}
	for _, k := range keys {
		t.Rows = append(t.Rows, []string{k, meta[k]})
	}
	t.Rows = append(t.Rows, []string{"current_rows", fmt.Sprintf("%d", rows)})
	return t
}
