//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-retail-report/internal/charts"
)

// Summary holds the three sales aggregates.
type Summary struct {
	TotalQuantity     int64
	TotalRevenue      float64
	DiscountedRevenue float64
}

// Discount is applied to each line before summing.
const summarySQL = `
SELECT
    COALESCE(SUM(quantity), 0) AS total_quantity,
    COALESCE(SUM(quantity * unit_price), 0) AS total_revenue,
    COALESCE(SUM((quantity * unit_price) * (1 - discount / 100.0)), 0) AS discounted_revenue
FROM sales`

// Summarize computes the aggregates. An empty table yields zeros.
func Summarize(ctx context.Context, s *Store) (Summary, error) {
	exists, err := s.TableExists(ctx)
	if err != nil {
		return Summary{}, err
	}
	if !exists {
		return Summary{}, ErrNoSalesTable
	}

	var row struct {
		Quantity   sql.NullInt64   `db:"total_quantity"`
		Revenue    sql.NullFloat64 `db:"total_revenue"`
		Discounted sql.NullFloat64 `db:"discounted_revenue"`
	}
	if err := s.db.GetContext(ctx, &row, summarySQL); err != nil {
		return Summary{}, fmt.Errorf("failed to summarize sales: %w", err)
	}

	// NULL counts as zero.
	return Summary{
		TotalQuantity:     row.Quantity.Int64,
		TotalRevenue:      round2(row.Revenue.Float64),
		DiscountedRevenue: round2(row.Discounted.Float64),
	}, nil
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// WriteTo prints the summary report.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "Sales Report Summary\nTotal Quantity sold: %d\nTotal Revenue: %s\nDiscounted Revenue: %s\n",
		s.TotalQuantity, charts.Money(s.TotalRevenue), charts.Money(s.DiscountedRevenue))
	return int64(n), err
}

// ChartSpec describes the summary bar chart with each bar annotated.
func (s Summary) ChartSpec(name string) charts.Spec {
	return charts.Spec{
		Name:       name,
		Title:      "Sales summary",
		Kind:       charts.KindBar,
		YLabel:     "Value",
		Thousands:  true,
		Categories: []string{"Total Quantity", "Total Revenue", "Discounted Revenue"},
		Series: []charts.Series{{
			Name:   "Value",
			Values: []float64{float64(s.TotalQuantity), s.TotalRevenue, s.DiscountedRevenue},
		}},
		Labels: []string{
			charts.Integer(float64(s.TotalQuantity)),
			charts.Money(s.TotalRevenue),
			charts.Money(s.DiscountedRevenue),
		},
	}
}
