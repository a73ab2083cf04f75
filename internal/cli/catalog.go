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
	"io"

	"github.com/pgEdge/pgedge-retail-report/internal/report"
)

func writeCatalog(w io.Writer, defs []report.Definition) {
	t := report.Table{Header: []string{"Name", "Title", "Chart"}}
	for _, def := range defs {
		t.Rows = append(t.Rows, []string{def.Name, def.Title, def.Kind.String()})
	}
	report.WriteTable(w, t)
}
