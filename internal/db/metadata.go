//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pgEdge/pgedge-retail-report/internal/logging"
	"github.com/pgEdge/pgedge-retail-report/pkg/version"
)

const metadataTable = "retail_report_metadata"

// Metadata keys written by SaveMetadata.
const (
	KeySourcePath = "source_path"
	KeyRowCount   = "row_count"
	KeyLoadedAt   = "loaded_at"
	KeyVersion    = "version"
)

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS retail_report_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SaveMetadata records where the loaded snapshot came from and how many
// rows it contributed.
func SaveMetadata(ctx context.Context, db DB, sourcePath string, rows int64) error {
	_, err := db.Exec(ctx, createMetadataTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := [][2]string{
		{KeySourcePath, sourcePath},
		{KeyRowCount, strconv.FormatInt(rows, 10)},
		{KeyLoadedAt, time.Now().UTC().Format(time.RFC3339)},
		{KeyVersion, version.Short()},
	}

	for _, kv := range metadata {
		_, err := db.Exec(ctx, `
            INSERT INTO retail_report_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, kv[0], kv[1])
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", kv[0], err)
		}
	}

	logging.Debug().
		Str("source", sourcePath).
		Int64("rows", rows).
		Msg("Saved metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, db DB, key string) (string, error) {
	var value string
	err := db.QueryRow(ctx, `
        SELECT value FROM retail_report_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, db DB) (map[string]string, error) {
	rows, err := db.Query(ctx, `SELECT key, value FROM retail_report_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}

// MetadataExists checks if the metadata table exists.
func MetadataExists(ctx context.Context, db DB) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, metadataTable).Scan(&exists)
	return exists, err
}
