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
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-retail-report/internal/retail"
)

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func TestSeason(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Winter"},
		{time.March, "Spring"},
		{time.July, "Summer"},
		{time.October, "Fall"},
		{time.December, "Winter"},
	}
	for _, tt := range tests {
		if got := Season(tt.month); got != tt.want {
			t.Errorf("Season(%s): expected %s, got %s", tt.month, tt.want, got)
		}
	}
}

func TestProductList(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"Milk"}, "['Milk']"},
		{[]string{"Milk", "Bread"}, "['Milk', 'Bread']"},
		{nil, "[]"},
	}
	for _, tt := range tests {
		if got := ProductList(tt.in); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
	}
}

func TestGeneratorTransaction(t *testing.T) {
	opts := DefaultOptions()
	opts.Rows = 200
	opts.Seed = 99
	g := NewGenerator(opts)

	for i := 0; i < opts.Rows; i++ {
		tx := g.Transaction()

		if tx.TransactionID != opts.FirstID+int64(i) {
			t.Errorf("Expected id %d, got %d", opts.FirstID+int64(i), tx.TransactionID)
		}
		if tx.Date.Before(opts.Start) || tx.Date.After(opts.End) {
			t.Errorf("Date %v out of range", tx.Date.Time)
		}
		if tx.TotalItems < 1 || tx.TotalItems > 10 {
			t.Errorf("TotalItems %d out of range", tx.TotalItems)
		}
		if tx.TotalCost < 5 || tx.TotalCost > 100 {
			t.Errorf("TotalCost %f out of range", tx.TotalCost)
		}
		if !strings.HasPrefix(tx.Product, "['") || !strings.HasSuffix(tx.Product, "']") {
			t.Errorf("Unexpected product list %q", tx.Product)
		}
		if !contains(Cities, tx.City) {
			t.Errorf("Unexpected city %q", tx.City)
		}
		if !contains(StoreTypes, tx.StoreType) {
			t.Errorf("Unexpected store type %q", tx.StoreType)
		}
		if !contains(PaymentMethods, tx.PaymentMethod) {
			t.Errorf("Unexpected payment method %q", tx.PaymentMethod)
		}
		if !contains(Promotions, tx.Promotion) {
			t.Errorf("Unexpected promotion %q", tx.Promotion)
		}
		if tx.Season != Season(tx.Date.Month()) {
			t.Errorf("Season %s does not match %s", tx.Season, tx.Date.Month())
		}
		if tx.CustomerName == "" {
			t.Error("CustomerName is empty")
		}
	}
}

func TestGeneratorSeedIsReproducible(t *testing.T) {
	opts := DefaultOptions()
	opts.Rows = 50
	opts.Seed = 2024

	var a, b bytes.Buffer
	if _, err := NewGenerator(opts).Write(context.Background(), &a); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := NewGenerator(opts).Write(context.Background(), &b); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if a.String() != b.String() {
		t.Error("Expected identical output for the same seed")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.Rows = 25
	opts.Seed = 1
	path := filepath.Join(t.TempDir(), "out", "retail.csv")

	n, err := WriteFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if n != 25 {
		t.Errorf("Expected 25 rows written, got %d", n)
	}

	txns, err := retail.ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(txns) != 25 {
		t.Errorf("Expected 25 rows read, got %d", len(txns))
	}
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultOptions()
	opts.Rows = 10
	opts.Seed = 1

	var buf bytes.Buffer
	if _, err := NewGenerator(opts).Write(ctx, &buf); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
