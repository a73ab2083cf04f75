//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package retail

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/pgEdge/pgedge-retail-report/internal/db"
)

// textColumns are checked for empty values by Describe.
var textColumns = []string{
	"customer_name",
	"product",
	"payment_method",
	"city",
	"store_type",
	"customer_category",
	"season",
	"promotion",
}

// NumericSummary holds simple statistics for one numeric column.
type NumericSummary struct {
	Min  float64
	Max  float64
	Mean float64
}

// Overview summarises the loaded snapshot.
type Overview struct {
	Rows           int64
	Customers      int64
	Cities         int64
	StoreTypes     int64
	PaymentMethods int64

	// FirstOrder and LastOrder are nil when the table is empty.
	FirstOrder *time.Time
	LastOrder  *time.Time

	TotalItems NumericSummary
	TotalCost  NumericSummary

	// EmptyValues counts blank values per text column.
	EmptyValues map[string]int64
}

// Describe computes an overview of the loaded transactions.
func Describe(ctx context.Context, conn db.DB) (*Overview, error) {
	o := &Overview{EmptyValues: make(map[string]int64, len(textColumns))}

	err := conn.QueryRow(ctx, `
        SELECT COUNT(*),
               COUNT(DISTINCT customer_name),
               COUNT(DISTINCT city),
               COUNT(DISTINCT store_type),
               COUNT(DISTINCT payment_method),
               MIN(order_date),
               MAX(order_date),
               COALESCE(MIN(total_items), 0)::float8,
               COALESCE(MAX(total_items), 0)::float8,
               COALESCE(AVG(total_items), 0)::float8,
               COALESCE(MIN(total_cost), 0)::float8,
               COALESCE(MAX(total_cost), 0)::float8,
               COALESCE(AVG(total_cost), 0)::float8
        FROM retail_transactions
    `).Scan(
		&o.Rows, &o.Customers, &o.Cities, &o.StoreTypes, &o.PaymentMethods,
		&o.FirstOrder, &o.LastOrder,
		&o.TotalItems.Min, &o.TotalItems.Max, &o.TotalItems.Mean,
		&o.TotalCost.Min, &o.TotalCost.Max, &o.TotalCost.Mean,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to describe transactions: %w", err)
	}

	filters := make([]string, len(textColumns))
	for i, col := range textColumns {
		filters[i] = fmt.Sprintf("COUNT(*) FILTER (WHERE %s = '')", col)
	}
	counts := make([]int64, len(textColumns))
	dest := make([]any, len(textColumns))
	for i := range counts {
		dest[i] = &counts[i]
	}

	err = conn.QueryRow(ctx,
		"SELECT "+strings.Join(filters, ", ")+" FROM retail_transactions",
	).Scan(dest...)
	if err != nil {
		return nil, fmt.Errorf("failed to count empty values: %w", err)
	}
	for i, col := range textColumns {
		o.EmptyValues[col] = counts[i]
	}

	return o, nil
}

// WriteTo prints the overview as a two column table.
func (o *Overview) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Measure", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	dateRange := "-"
	if o.FirstOrder != nil && o.LastOrder != nil {
		dateRange = o.FirstOrder.Format(TimestampLayout) + " .. " + o.LastOrder.Format(TimestampLayout)
	}

	table.AppendBulk([][]string{
		{"Rows", fmt.Sprint(o.Rows)},
		{"Customers", fmt.Sprint(o.Customers)},
		{"Cities", fmt.Sprint(o.Cities)},
		{"Store types", fmt.Sprint(o.StoreTypes)},
		{"Payment methods", fmt.Sprint(o.PaymentMethods)},
		{"Order dates", dateRange},
		{"Total_Items min/mean/max", fmt.Sprintf("%.0f / %.2f / %.0f", o.TotalItems.Min, o.TotalItems.Mean, o.TotalItems.Max)},
		{"Total_Cost min/mean/max", fmt.Sprintf("%.2f / %.2f / %.2f", o.TotalCost.Min, o.TotalCost.Mean, o.TotalCost.Max)},
	})
	for _, col := range textColumns {
		table.Append([]string{"Empty " + col, fmt.Sprint(o.EmptyValues[col])})
	}
	table.Render()

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
