//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package charts turns small aggregate result tables into chart images.
package charts

import (
	"fmt"
)

// Kind selects how a Spec is drawn.
type Kind int

const (
	// KindBar draws one vertical bar per category.
	KindBar Kind = iota + 1

	// KindGroupedBar draws one bar per (category, series), grouped by category.
	KindGroupedBar

	// KindHorizontalBar draws one horizontal bar per category, top to bottom.
	KindHorizontalBar

	// KindLine draws one line per series across the categories.
	KindLine
)

// String returns the kind name used in listings.
func (k Kind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindGroupedBar:
		return "grouped-bar"
	case KindHorizontalBar:
		return "horizontal-bar"
	case KindLine:
		return "line"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Series is one named row of values aligned with Spec.Categories.
type Series struct {
	Name   string
	Values []float64
}

// Spec describes a chart independently of the rendering library.
type Spec struct {
	// Name is the file stem used when the chart is written out.
	Name  string
	Title string
	Kind  Kind

	XLabel string
	YLabel string

	Categories []string
	Series     []Series

	// Labels, when set, annotates each category of a single-series chart.
	Labels []string

	// Thousands formats the value axis with grouped digits and no fraction.
	Thousands bool
}

// Validate checks that the spec can be drawn.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("chart name is required")
	}
	if len(s.Categories) == 0 {
		return fmt.Errorf("chart %s has no categories", s.Name)
	}
	if len(s.Series) == 0 {
		return fmt.Errorf("chart %s has no series", s.Name)
	}
	for _, series := range s.Series {
		if len(series.Values) != len(s.Categories) {
			return fmt.Errorf("chart %s: series %q has %d values for %d categories",
				s.Name, series.Name, len(series.Values), len(s.Categories))
		}
	}
	if s.Labels != nil && len(s.Labels) != len(s.Categories) {
		return fmt.Errorf("chart %s: %d labels for %d categories",
			s.Name, len(s.Labels), len(s.Categories))
	}
	switch s.Kind {
	case KindBar, KindHorizontalBar:
		if len(s.Series) != 1 {
			return fmt.Errorf("chart %s: %s charts take exactly one series", s.Name, s.Kind)
		}
	case KindGroupedBar, KindLine:
	default:
		return fmt.Errorf("chart %s: unknown kind %s", s.Name, s.Kind)
	}
	return nil
}

// Pivot reshapes long rows into categories and series. Categories and
// series keep the order in which they first appear. A (category, series)
// pair with no row is zero: rows are aggregates, so an absent group had
// no transactions, and line charts plot it at zero rather than as a gap.
func Pivot[T any](rows []T, category, series func(T) string, value func(T) float64) ([]string, []Series) {
	catIndex := make(map[string]int)
	serIndex := make(map[string]int)
	var categories []string
	var names []string

	for _, row := range rows {
		c, s := category(row), series(row)
		if _, ok := catIndex[c]; !ok {
			catIndex[c] = len(categories)
			categories = append(categories, c)
		}
		if _, ok := serIndex[s]; !ok {
			serIndex[s] = len(names)
			names = append(names, s)
		}
	}

	out := make([]Series, len(names))
	for i, name := range names {
		out[i] = Series{Name: name, Values: make([]float64, len(categories))}
	}
	for _, row := range rows {
		out[serIndex[series(row)]].Values[catIndex[category(row)]] += value(row)
	}

	return categories, out
}
