//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package charts

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Thousands formats v with grouped digits, truncating any fraction.
func Thousands(v float64) string {
	return printer.Sprintf("%d", int64(v))
}

// Integer formats v rounded to the nearest whole number with grouped digits.
func Integer(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// Money formats v with grouped digits and two decimals.
func Money(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// axisFormatter returns the tick formatter for a value axis.
func axisFormatter(thousands bool) func(v interface{}) string {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		if thousands || f == math.Trunc(f) {
			return Thousands(f)
		}
		return printer.Sprintf("%.1f", f)
	}
}
