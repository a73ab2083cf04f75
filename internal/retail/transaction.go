//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package retail loads the retail transactions snapshot into PostgreSQL
// and defines the aggregate queries that are reported over it.
package retail

import (
	"fmt"
	"time"
)

// TimestampLayout is the date format used by the snapshot.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a time that reads and writes the snapshot's date format.
type Timestamp struct {
	time.Time
}

// UnmarshalText parses a snapshot date.
func (t *Timestamp) UnmarshalText(b []byte) error {
	parsed, err := time.Parse(TimestampLayout, string(b))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", string(b), err)
	}
	t.Time = parsed
	return nil
}

// MarshalText formats a snapshot date.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.Format(TimestampLayout)), nil
}

// Transaction is one row of the retail snapshot.
type Transaction struct {
	TransactionID    int64     `csv:"Transaction_ID"`
	Date             Timestamp `csv:"Date"`
	CustomerName     string    `csv:"Customer_Name"`
	Product          string    `csv:"Product"`
	TotalItems       int       `csv:"Total_Items"`
	TotalCost        float64   `csv:"Total_Cost"`
	PaymentMethod    string    `csv:"Payment_Method"`
	City             string    `csv:"City"`
	StoreType        string    `csv:"Store_Type"`
	DiscountApplied  bool      `csv:"Discount_Applied"`
	CustomerCategory string    `csv:"Customer_Category"`
	Season           string    `csv:"Season"`
	Promotion        string    `csv:"Promotion"`
}

// copyColumns lists the table columns in the order copyRow fills them.
var copyColumns = []string{
	"transaction_id",
	"order_date",
	"customer_name",
	"product",
	"total_items",
	"total_cost",
	"payment_method",
	"city",
	"store_type",
	"discount_applied",
	"customer_category",
	"season",
	"promotion",
}

func (t Transaction) copyRow() []any {
	return []any{
		t.TransactionID,
		t.Date.Time,
		t.CustomerName,
		t.Product,
		t.TotalItems,
		t.TotalCost,
		t.PaymentMethod,
		t.City,
		t.StoreType,
		t.DiscountApplied,
		t.CustomerCategory,
		t.Season,
		t.Promotion,
	}
}
