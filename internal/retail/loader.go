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
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-retail-report/internal/db"
	"github.com/pgEdge/pgedge-retail-report/internal/logging"
)

// DefaultBatchSize is the number of rows sent per COPY when none is given.
const DefaultBatchSize = 5000

// LoadOptions controls how a snapshot is loaded.
type LoadOptions struct {
	// BatchSize is the number of rows per COPY round trip.
	BatchSize int

	// DropExisting replaces an already loaded table.
	DropExisting bool
}

// LoadResult describes the outcome of Load.
type LoadResult struct {
	// Rows is the number of transactions in the table afterwards.
	Rows int64

	// Skipped is set when the table was already populated and left alone.
	Skipped bool
}

// Load makes the snapshot at path queryable. An already populated table is
// kept unless opts.DropExisting is set, so repeated loads are no-ops.
func Load(ctx context.Context, conn db.DB, path string, opts LoadOptions) (LoadResult, error) {
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultBatchSize
	}

	r, err := OpenCSV(path)
	if err != nil {
		return LoadResult{}, err
	}
	defer r.Close()

	if opts.DropExisting {
		logging.Info().Str("table", TableName).Msg("Dropping existing table")
		if err := DropSchema(ctx, conn); err != nil {
			return LoadResult{}, fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, conn); err != nil {
			return LoadResult{}, fmt.Errorf("failed to drop metadata: %w", err)
		}
	}

	if err := CreateSchema(ctx, conn); err != nil {
		return LoadResult{}, fmt.Errorf("failed to create schema: %w", err)
	}

	existing, err := CountRows(ctx, conn)
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to count rows: %w", err)
	}
	if existing > 0 {
		logging.Info().
			Str("table", TableName).
			Int64("rows", existing).
			Msg("Table already loaded, skipping (use --drop-existing to reload)")
		return LoadResult{Rows: existing, Skipped: true}, nil
	}

	logging.Info().
		Str("source", path).
		Int("batch_size", opts.BatchSize).
		Msg("Loading transactions")

	rows, err := copyTransactions(ctx, conn, r, opts.BatchSize)
	if err != nil {
		return LoadResult{}, err
	}

	if err := db.SaveMetadata(ctx, conn, path, rows); err != nil {
		return LoadResult{}, err
	}

	return LoadResult{Rows: rows}, nil
}

// copyTransactions copies every remaining row of r in one transaction.
func copyTransactions(ctx context.Context, conn db.DB, r *Reader, batchSize int) (int64, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	progress := logging.NewProgress(TableName, int64(batchSize)*10)
	batch := make([][]any, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := tx.CopyFrom(ctx, pgx.Identifier{TableName}, copyColumns, pgx.CopyFromRows(batch))
		if err != nil {
			return fmt.Errorf("failed to copy rows: %w", err)
		}
		progress.Add(n)
		batch = batch[:0]
		return nil
	}

	for {
		t, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to decode transaction: %w", err)
		}

		batch = append(batch, t.copyRow())
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return 0, err
			}
		}
	}
	if err := flush(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit load: %w", err)
	}

	progress.Done()
	return progress.Rows(), nil
}

// LoadStatus compares the row count recorded by the last load with the
// rows currently in the table.
type LoadStatus struct {
	Recorded int64
	Current  int64
}

// Consistent reports whether the table still holds what was loaded.
func (s LoadStatus) Consistent() bool {
	return s.Recorded == s.Current
}

// CheckLoad reads the recorded row count and counts the table.
func CheckLoad(ctx context.Context, conn db.DB) (LoadStatus, error) {
	raw, err := db.GetMetadataValue(ctx, conn, db.KeyRowCount)
	if err != nil {
		return LoadStatus{}, fmt.Errorf("failed to read recorded row count: %w", err)
	}
	recorded, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return LoadStatus{}, fmt.Errorf("invalid recorded row count %q: %w", raw, err)
	}

	current, err := CountRows(ctx, conn)
	if err != nil {
		return LoadStatus{}, err
	}
	return LoadStatus{Recorded: recorded, Current: current}, nil
}
