//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sales computes the sales summary over a small sales line table,
// seeding an embedded SQLite store with sample lines on first use.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/pgEdge/pgedge-retail-report/internal/logging"
)

// Driver names registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// ErrNoSalesTable is returned when a store that is never seeded has no
// sales table.
var ErrNoSalesTable = errors.New("sales table does not exist")

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Location is a parsed store URL.
type Location struct {
	Driver string
	DSN    string
}

// IsSQLite reports whether the location is an embedded SQLite file.
func (l Location) IsSQLite() bool {
	return l.Driver == DriverSQLite
}

// ParseURL interprets a store URL. SQLite URLs take the form
// sqlite:///relative.db or sqlite:////absolute.db; a URL without a scheme
// is a SQLite file path. postgres:// and postgresql:// URLs are passed to
// the pgx driver unchanged.
func ParseURL(url string) (Location, error) {
	switch {
	case url == "":
		return Location{}, fmt.Errorf("empty database url")
	case strings.HasPrefix(url, "sqlite:///"):
		path := strings.TrimPrefix(url, "sqlite:///")
		if path == "" {
			return Location{}, fmt.Errorf("sqlite url %q has no file path", url)
		}
		return Location{Driver: DriverSQLite, DSN: path}, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Location{Driver: DriverPostgres, DSN: url}, nil
	case strings.Contains(url, "://"):
		return Location{}, fmt.Errorf("unsupported database url %q", url)
	default:
		return Location{Driver: DriverSQLite, DSN: url}, nil
	}
}

// Store is an open sales store.
type Store struct {
	db  *sqlx.DB
	loc Location
}

// Open connects to the store at url and verifies the connection.
func Open(ctx context.Context, url string) (*Store, error) {
	loc, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("driver", loc.Driver).
		Msg("Opening sales store")

	conn, err := sqlx.ConnectContext(ctx, loc.Driver, loc.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales store: %w", err)
	}
	conn.SetMaxOpenConns(1)

	return &Store{db: conn, loc: loc}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Location returns where the store lives.
func (s *Store) Location() Location {
	return s.loc
}

// TableExists reports whether the sales table exists.
func (s *Store) TableExists(ctx context.Context) (bool, error) {
	query := `SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`
	if s.loc.IsSQLite() {
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	}

	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(query), "sales"); err != nil {
		return false, fmt.Errorf("failed to check for sales table: %w", err)
	}
	return n > 0, nil
}

// Lines returns every sales line in insertion order.
func (s *Store) Lines(ctx context.Context) ([]Line, error) {
	var lines []Line
	err := s.db.SelectContext(ctx, &lines, `
        SELECT id, order_date, product, quantity, unit_price, discount
        FROM sales
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales lines: %w", err)
	}
	return lines, nil
}
