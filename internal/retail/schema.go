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

	"github.com/pgEdge/pgedge-retail-report/internal/db"
)

// TableName is the table the snapshot is loaded into.
const TableName = "retail_transactions"

// The id column records load order and breaks ties between equal totals.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS retail_transactions (
    id                 BIGSERIAL PRIMARY KEY,
    transaction_id     BIGINT NOT NULL,
    order_date         TIMESTAMP NOT NULL,
    customer_name      TEXT NOT NULL,
    product            TEXT NOT NULL,
    total_items        INTEGER NOT NULL,
    total_cost         DOUBLE PRECISION NOT NULL,
    payment_method     TEXT NOT NULL,
    city               TEXT NOT NULL,
    store_type         TEXT NOT NULL,
    discount_applied   BOOLEAN NOT NULL,
    customer_category  TEXT NOT NULL,
    season             TEXT NOT NULL,
    promotion          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_retail_transactions_city ON retail_transactions(city);
CREATE INDEX IF NOT EXISTS idx_retail_transactions_store_type ON retail_transactions(store_type);
CREATE INDEX IF NOT EXISTS idx_retail_transactions_payment_method ON retail_transactions(payment_method);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS retail_transactions CASCADE;
`

// CreateSchema creates the transactions table and its indexes.
func CreateSchema(ctx context.Context, conn db.DB) error {
	_, err := conn.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the transactions table.
func DropSchema(ctx context.Context, conn db.DB) error {
	_, err := conn.Exec(ctx, dropSchemaSQL)
	return err
}

// CountRows returns the number of loaded transactions.
func CountRows(ctx context.Context, conn db.DB) (int64, error) {
	var n int64
	err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM retail_transactions`).Scan(&n)
	return n, err
}

// TableExists reports whether the transactions table has been created.
func TableExists(ctx context.Context, conn db.DB) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, TableName).Scan(&exists)
	return exists, err
}
