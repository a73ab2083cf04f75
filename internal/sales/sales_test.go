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
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/pgEdge/pgedge-retail-report/internal/charts"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.db")
	s, err := Open(context.Background(), "sqlite:///"+path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		url        string
		wantDriver string
		wantDSN    string
		wantError  bool
	}{
		{"sqlite:///sales.db", DriverSQLite, "sales.db", false},
		{"sqlite:///data/sales.db", DriverSQLite, "data/sales.db", false},
		{"sqlite:////var/lib/sales.db", DriverSQLite, "/var/lib/sales.db", false},
		{"sales.db", DriverSQLite, "sales.db", false},
		{"postgres://user@localhost/shop", DriverPostgres, "postgres://user@localhost/shop", false},
		{"postgresql://user@localhost/shop", DriverPostgres, "postgresql://user@localhost/shop", false},
		{"mysql://user@localhost/shop", "", "", true},
		{"sqlite:///", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			loc, err := ParseURL(tt.url)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if loc.Driver != tt.wantDriver {
				t.Errorf("Expected driver %s, got %s", tt.wantDriver, loc.Driver)
			}
			if loc.DSN != tt.wantDSN {
				t.Errorf("Expected DSN %s, got %s", tt.wantDSN, loc.DSN)
			}
		})
	}
}

func TestSeedIfNeeded(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	seeded, err := SeedIfNeeded(ctx, s)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !seeded {
		t.Error("Expected first call to seed")
	}

	seeded, err = SeedIfNeeded(ctx, s)
	if err != nil {
		t.Fatalf("Expected no error on second seed, got: %v", err)
	}
	if seeded {
		t.Error("Expected second call to be a no-op")
	}

	lines, err := s.Lines(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(lines) != len(SeedLines) {
		t.Fatalf("Expected %d lines, got %d", len(SeedLines), len(lines))
	}
	for i, l := range lines {
		want := SeedLines[i]
		if l.Product != want.Product || l.Quantity != want.Quantity || l.UnitPrice != want.UnitPrice || l.Discount != want.Discount {
			t.Errorf("Line %d: expected %+v, got %+v", i, want, l)
		}
		if l.ID != int64(i+1) {
			t.Errorf("Line %d: expected id %d, got %d", i, i+1, l.ID)
		}
	}
}

func TestSeedSkippedForPostgres(t *testing.T) {
	s := &Store{loc: Location{Driver: DriverPostgres}}
	seeded, err := SeedIfNeeded(context.Background(), s)
	if err != nil || seeded {
		t.Errorf("Expected postgres store to be left alone, got seeded=%v err=%v", seeded, err)
	}
}

func TestSummarizeSeeded(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if _, err := SeedIfNeeded(ctx, s); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	sum, err := Summarize(ctx, s)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sum.TotalQuantity != 28 {
		t.Errorf("Expected quantity 28, got %d", sum.TotalQuantity)
	}
	if sum.TotalRevenue != 5519.82 {
		t.Errorf("Expected revenue 5519.82, got %v", sum.TotalRevenue)
	}
	if sum.DiscountedRevenue != 5453.37 {
		t.Errorf("Expected discounted revenue 5453.37, got %v", sum.DiscountedRevenue)
	}

	var out bytes.Buffer
	if _, err := sum.WriteTo(&out); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	want := "Sales Report Summary\n" +
		"Total Quantity sold: 28\n" +
		"Total Revenue: 5,519.82\n" +
		"Discounted Revenue: 5,453.37\n"
	if out.String() != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestSummarizeIsRepeatable(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if _, err := SeedIfNeeded(ctx, s); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	var first, second bytes.Buffer
	for _, buf := range []*bytes.Buffer{&first, &second} {
		if _, err := SeedIfNeeded(ctx, s); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
		sum, err := Summarize(ctx, s)
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		sum.WriteTo(buf)
	}
	if first.String() != second.String() {
		t.Errorf("Expected identical output, got %q and %q", first.String(), second.String())
	}
}

func TestSummarizeEmptyTable(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if err := s.insert(ctx, nil); err != nil {
		t.Fatalf("Failed to create empty table: %v", err)
	}

	sum, err := Summarize(ctx, s)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var out bytes.Buffer
	sum.WriteTo(&out)
	want := "Sales Report Summary\n" +
		"Total Quantity sold: 0\n" +
		"Total Revenue: 0.00\n" +
		"Discounted Revenue: 0.00\n"
	if out.String() != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestSummarizeMissingTable(t *testing.T) {
	s := openTemp(t)
	_, err := Summarize(context.Background(), s)
	if !errors.Is(err, ErrNoSalesTable) {
		t.Errorf("Expected ErrNoSalesTable, got %v", err)
	}
}

func TestDiscountAppliedPerLine(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	lines := []Line{
		{OrderDate: "2025-01-01", Product: "A", Quantity: 1, UnitPrice: 100, Discount: 50},
		{OrderDate: "2025-01-01", Product: "B", Quantity: 1, UnitPrice: 300, Discount: 0},
	}
	if err := s.insert(ctx, lines); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	sum, err := Summarize(ctx, s)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	// A blended 25% discount would give 300.
	if sum.DiscountedRevenue != 350 {
		t.Errorf("Expected 350, got %v", sum.DiscountedRevenue)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{5453.36695, 5453.37},
		{5519.819999999999, 5519.82},
		{0.125, 0.13},
		{-0.125, -0.13},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestChartSpec(t *testing.T) {
	sum := Summary{TotalQuantity: 28, TotalRevenue: 5519.82, DiscountedRevenue: 5453.37}
	spec := sum.ChartSpec("sales_summary")

	if err := spec.Validate(); err != nil {
		t.Fatalf("Expected valid spec, got: %v", err)
	}
	want := []string{"28", "5,519.82", "5,453.37"}
	for i, w := range want {
		if spec.Labels[i] != w {
			t.Errorf("Label %d: expected %s, got %s", i, w, spec.Labels[i])
		}
	}
	if spec.Title != "Sales summary" || spec.YLabel != "Value" {
		t.Errorf("Unexpected title/label: %q / %q", spec.Title, spec.YLabel)
	}
	if !spec.Thousands {
		t.Error("Expected a thousands-separated value axis")
	}

	large := Summary{TotalQuantity: 12345}.ChartSpec("large")
	if large.Labels[0] != "12,345" {
		t.Errorf("Expected grouped quantity label 12,345, got %s", large.Labels[0])
	}
}

func TestChartAxisHasNoFractionalTicks(t *testing.T) {
	sum := Summary{TotalQuantity: 28, TotalRevenue: 5519.82, DiscountedRevenue: 5453.37}
	opts := charts.DefaultOptions()
	opts.Format = charts.FormatSVG

	var buf bytes.Buffer
	if err := charts.Render(&buf, sum.ChartSpec("sales_summary"), opts); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Annotations carry two decimals; a single decimal can only be a tick.
	fractional := regexp.MustCompile(`>\d[\d,]*\.\d<`)
	if ticks := fractional.FindAllString(buf.String(), -1); len(ticks) > 0 {
		t.Errorf("Expected whole-number axis ticks, got %v", ticks)
	}
	if !strings.Contains(buf.String(), "5,519.82") {
		t.Error("Expected revenue annotation in chart")
	}
}
