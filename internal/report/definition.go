//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report defines the query catalog and runs it, printing each
// result as a table and handing its chart to a presenter.
package report

import (
	"context"

	"github.com/pgEdge/pgedge-retail-report/internal/charts"
	"github.com/pgEdge/pgedge-retail-report/internal/db"
)

// Table is a printable result set.
type Table struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Output is what one catalog query produces.
type Output struct {
	Table Table
	Chart charts.Spec
}

// Definition describes one catalog query.
type Definition struct {
	// Name is the stable identifier used on the command line and as the
	// chart file name.
	Name string

	// Title is the human-readable heading.
	Title string

	// Description explains what the query measures.
	Description string

	// Kind is the chart drawn for the result.
	Kind charts.Kind

	// Run executes the query. It must not modify the database.
	Run func(ctx context.Context, conn db.DB) (Output, error)
}
