//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-retail-report/internal/logging"
	"github.com/pgEdge/pgedge-retail-report/internal/retail"
)

// Value pools for the categorical columns.
var (
	Cities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "Dallas", "Seattle", "Boston", "Miami",
		"Atlanta", "San Francisco",
	}
	StoreTypes = []string{
		"Supermarket", "Convenience Store", "Warehouse Club",
		"Pharmacy", "Specialty Store", "Department Store",
	}
	PaymentMethods = []string{"Cash", "Credit Card", "Debit Card", "Mobile Payment"}
	Promotions     = []string{"None", "BOGO (Buy One Get One)", "Discount on Selected Items"}
	CustomerTypes  = []string{
		"Student", "Professional", "Young Adult", "Middle-Aged",
		"Retiree", "Senior Citizen", "Homemaker", "Teenager",
	}
	Products = []string{
		"Milk", "Bread", "Eggs", "Butter", "Cheese", "Yogurt", "Apple",
		"Banana", "Orange", "Tomatoes", "Potatoes", "Onions", "Rice",
		"Pasta", "Cereal", "Coffee", "Tea", "Sugar", "Salt", "Chicken",
		"Beef", "Fish", "Toothpaste", "Shampoo", "Soap", "Dish Soap",
		"Laundry Detergent", "Paper Towels", "Toilet Paper", "Water",
	}
)

// promotionWeights favour no promotion.
var promotionWeights = []int{2, 1, 1}

// Options configures a generation run.
type Options struct {
	// Rows is the number of transactions to produce.
	Rows int

	// Seed makes output reproducible. Zero picks a random seed.
	Seed uint64

	// Start and End bound the order dates.
	Start time.Time
	End   time.Time

	// FirstID is the first transaction id.
	FirstID int64

	// ProgressInterval is how often to log progress, in rows.
	ProgressInterval int64
}

// DefaultOptions returns the options used by the generate command.
func DefaultOptions() Options {
	return Options{
		Rows:             10000,
		Start:            time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:              time.Date(2024, 5, 18, 23, 59, 59, 0, time.UTC),
		FirstID:          1000000000,
		ProgressInterval: 100000,
	}
}

// Generator produces transactions in the snapshot layout.
type Generator struct {
	faker     *Faker
	opts      Options
	customers []string
	next      int64
}

// NewGenerator creates a generator. Customers are drawn from a pool
// smaller than the row count so that repeat buyers occur.
func NewGenerator(opts Options) *Generator {
	var f *Faker
	if opts.Seed == 0 {
		f = NewFaker()
	} else {
		f = NewFakerWithSeed(opts.Seed)
	}

	poolSize := opts.Rows / 4
	if poolSize < 1 {
		poolSize = 1
	}
	customers := make([]string, poolSize)
	for i := range customers {
		customers[i] = f.Name()
	}

	return &Generator{
		faker:     f,
		opts:      opts,
		customers: customers,
		next:      opts.FirstID,
	}
}

// Transaction returns the next synthetic transaction.
func (g *Generator) Transaction() retail.Transaction {
	f := g.faker
	date := f.DateRange(g.opts.Start, g.opts.End).Truncate(time.Second)
	items := f.Int(1, 10)
	cost := decimal.NewFromFloat(f.Price(5, 100)).Round(2).InexactFloat64()

	t := retail.Transaction{
		TransactionID:    g.next,
		Date:             retail.Timestamp{Time: date},
		CustomerName:     Choose(f, g.customers),
		Product:          ProductList(Sample(f, Products, f.Int(1, 6))),
		TotalItems:       items,
		TotalCost:        cost,
		PaymentMethod:    Choose(f, PaymentMethods),
		City:             Choose(f, Cities),
		StoreType:        Choose(f, StoreTypes),
		DiscountApplied:  f.Bool(),
		CustomerCategory: Choose(f, CustomerTypes),
		Season:           Season(date.Month()),
		Promotion:        ChooseWeighted(f, Promotions, promotionWeights),
	}
	g.next++
	return t
}

// Write writes opts.Rows transactions to w.
func (g *Generator) Write(ctx context.Context, w io.Writer) (int64, error) {
	cw := retail.NewCSVWriter(w)
	progress := logging.NewProgress("csv", g.opts.ProgressInterval)

	for i := 0; i < g.opts.Rows; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return progress.Rows(), err
			}
		}
		t := g.Transaction()
		if err := cw.Write(t); err != nil {
			return progress.Rows(), fmt.Errorf("failed to write transaction %d: %w", t.TransactionID, err)
		}
		progress.Add(1)
	}

	if err := cw.Flush(); err != nil {
		return progress.Rows(), fmt.Errorf("failed to flush csv: %w", err)
	}
	progress.Done()
	return progress.Rows(), nil
}

// WriteFile generates a CSV at path, creating its parent directory.
func WriteFile(ctx context.Context, path string, opts Options) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := NewGenerator(opts).Write(ctx, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, cerr)
	}
	return n, err
}

// ProductList formats products the way the snapshot stores them,
// e.g. ['Milk', 'Bread'].
func ProductList(products []string) string {
	quoted := make([]string, len(products))
	for i, p := range products {
		quoted[i] = "'" + p + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Season maps a month to its northern hemisphere season.
func Season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Fall"
	}
}
