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
	"fmt"

	"github.com/pgEdge/pgedge-retail-report/internal/logging"
)

// Line is one sales line item. Discount is a percentage from 0 to 100.
type Line struct {
	ID        int64   `db:"id"`
	OrderDate string  `db:"order_date"`
	Product   string  `db:"product"`
	Quantity  int64   `db:"quantity"`
	UnitPrice float64 `db:"unit_price"`
	Discount  float64 `db:"discount"`
}

// SeedLines are inserted into a new SQLite store.
var SeedLines = []Line{
	{OrderDate: "2025-07-01", Product: "Apple Watch", Quantity: 3, UnitPrice: 299.99, Discount: 2.50},
	{OrderDate: "2025-07-01", Product: "AirPods", Quantity: 5, UnitPrice: 149.00, Discount: 1.75},
	{OrderDate: "2025-07-02", Product: "iPhone Case", Quantity: 10, UnitPrice: 19.99, Discount: 2.25},
	{OrderDate: "2025-07-03", Product: "MacBook Pro", Quantity: 1, UnitPrice: 1999.00, Discount: 0.50},
	{OrderDate: "2025-07-03", Product: "iPad", Quantity: 2, UnitPrice: 499.00, Discount: 0.00},
	{OrderDate: "2025-07-04", Product: "AirPods", Quantity: 2, UnitPrice: 149.00, Discount: 1.25},
	{OrderDate: "2025-07-05", Product: "Apple Watch", Quantity: 1, UnitPrice: 299.99, Discount: 3.50},
	{OrderDate: "2025-07-05", Product: "iPhone Case", Quantity: 4, UnitPrice: 19.99, Discount: 2.75},
}

const createSalesTableSQL = `
CREATE TABLE sales (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    order_date  TEXT,
    product     TEXT,
    quantity    INTEGER,
    unit_price  REAL,
    discount    REAL
)`

const insertLineSQL = `
INSERT INTO sales (order_date, product, quantity, unit_price, discount)
VALUES (:order_date, :product, :quantity, :unit_price, :discount)`

// SeedIfNeeded creates and fills the sales table of a SQLite store that
// does not have one yet. Other stores, and SQLite stores that already
// have the table, are left untouched. It reports whether rows were added.
func SeedIfNeeded(ctx context.Context, s *Store) (bool, error) {
	if !s.loc.IsSQLite() {
		return false, nil
	}

	exists, err := s.TableExists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		logging.Debug().Msg("Sales table present, not seeding")
		return false, nil
	}

	return true, s.insert(ctx, SeedLines)
}

// insert creates the sales table and adds lines in one transaction.
func (s *Store) insert(ctx context.Context, lines []Line) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, createSalesTableSQL); err != nil {
		return fmt.Errorf("failed to create sales table: %w", err)
	}
	if len(lines) > 0 {
		if _, err := tx.NamedExecContext(ctx, insertLineSQL, lines); err != nil {
			return fmt.Errorf("failed to insert sales lines: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	logging.Info().
		Int("rows", len(lines)).
		Msg("Seeded sales table")
	return nil
}
