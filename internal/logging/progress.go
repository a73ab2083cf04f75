//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package logging

// Progress tracks row counts for a long-running copy and logs each time
// another interval worth of rows has been processed.
type Progress struct {
	target   string
	rows     int64
	interval int64
}

// NewProgress creates a progress tracker for the named target.
// An interval below 1 disables intermediate reporting.
func NewProgress(target string, interval int64) *Progress {
	return &Progress{
		target:   target,
		interval: interval,
	}
}

// Add records n more rows and logs when an interval boundary is crossed.
func (p *Progress) Add(n int64) {
	old := p.rows
	p.rows += n

	if p.interval < 1 {
		return
	}
	if p.rows/p.interval > old/p.interval {
		Info().
			Str("target", p.target).
			Int64("rows", p.rows).
			Msg("Copying rows")
	}
}

// Rows returns the number of rows recorded so far.
func (p *Progress) Rows() int64 {
	return p.rows
}

// Done logs completion.
func (p *Progress) Done() {
	Info().
		Str("target", p.target).
		Int64("rows", p.rows).
		Msg("Copy complete")
}
