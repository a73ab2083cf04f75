//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/pgEdge/pgedge-retail-report/internal/charts"
	"github.com/pgEdge/pgedge-retail-report/internal/db"
	"github.com/pgEdge/pgedge-retail-report/internal/logging"
)

// Presenter receives the chart of each query result.
type Presenter interface {
	Present(ctx context.Context, spec charts.Spec) (string, error)
}

// Runner executes catalog queries one after another.
type Runner struct {
	conn      db.DB
	out       io.Writer
	presenter Presenter
}

// NewRunner creates a runner printing tables to out. A nil presenter
// skips chart rendering.
func NewRunner(conn db.DB, out io.Writer, presenter Presenter) *Runner {
	return &Runner{
		conn:      conn,
		out:       out,
		presenter: presenter,
	}
}

// Run executes defs in order. The first failure stops the run.
func (r *Runner) Run(ctx context.Context, defs []Definition) error {
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		output, err := def.Run(ctx, r.conn)
		if err != nil {
			return fmt.Errorf("query %s failed: %w", def.Name, err)
		}

		logging.Debug().
			Str("query", def.Name).
			Int("rows", len(output.Table.Rows)).
			Dur("duration", time.Since(start)).
			Msg("Query complete")

		fmt.Fprintf(r.out, "\n%s\n", def.Title)
		WriteTable(r.out, output.Table)

		if output.Table.Empty() {
			logging.Warn().
				Str("query", def.Name).
				Msg("No rows returned, skipping chart")
			continue
		}

		if r.presenter == nil {
			continue
		}
		if _, err := r.presenter.Present(ctx, output.Chart); err != nil {
			return fmt.Errorf("query %s: %w", def.Name, err)
		}
	}
	return nil
}

// WriteTable prints t as an aligned console table.
func WriteTable(w io.Writer, t Table) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(t.Header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(t.Rows)
	table.Render()
}
