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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wcharczuk/go-chart/v2"
)

func sampleSpecs() []Spec {
	return []Spec{
		{
			Name:       "bar",
			Title:      "Payment Methods",
			Kind:       KindBar,
			Categories: []string{"Cash", "Credit Card", "Debit Card"},
			Series:     []Series{{Name: "Transactions", Values: []float64{120, 95, 40}}},
			Thousands:  true,
		},
		{
			Name:       "annotated",
			Title:      "Sales summary",
			Kind:       KindBar,
			YLabel:     "Value",
			Categories: []string{"Total Quantity", "Total Revenue", "Discounted Revenue"},
			Series:     []Series{{Name: "Value", Values: []float64{28, 5519.82, 5453.37}}},
			Labels:     []string{"28", "5,519.82", "5,453.37"},
		},
		{
			Name:       "grouped",
			Title:      "Payment Methods by City",
			Kind:       KindGroupedBar,
			Categories: []string{"Boston", "Chicago"},
			Series: []Series{
				{Name: "Cash", Values: []float64{10, 12}},
				{Name: "Credit Card", Values: []float64{8, 0}},
			},
		},
		{
			Name:       "horizontal",
			Title:      "Top Buyers",
			Kind:       KindHorizontalBar,
			Categories: []string{"Ada", "Grace", "Linus"},
			Series:     []Series{{Name: "Total Cost", Values: []float64{300.5, 300.5, 12}}},
		},
		{
			Name:       "line",
			Title:      "Yearly Sales",
			Kind:       KindLine,
			XLabel:     "Year",
			Categories: []string{"2020", "2021"},
			Series: []Series{
				{Name: "Items Sold", Values: []float64{1000, 1500}},
				{Name: "Total Cost", Values: []float64{25000.5, 31000}},
			},
			Thousands: true,
		},
		{
			Name:       "single-point-line",
			Title:      "One Year",
			Kind:       KindLine,
			Categories: []string{"2023"},
			Series:     []Series{{Name: "Cash", Values: []float64{5}}},
		},
		{
			Name:       "all-zero",
			Title:      "Empty Store",
			Kind:       KindBar,
			Categories: []string{"Total Quantity", "Total Revenue", "Discounted Revenue"},
			Series:     []Series{{Name: "Value", Values: []float64{0, 0, 0}}},
			Labels:     []string{"0", "0.00", "0.00"},
		},
	}
}

func TestRenderPNG(t *testing.T) {
	for _, spec := range sampleSpecs() {
		t.Run(spec.Name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, spec, DefaultOptions()); err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
				t.Errorf("Expected PNG output, got %d bytes starting %q", buf.Len(), buf.Bytes()[:min(8, buf.Len())])
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatSVG

	for _, spec := range sampleSpecs() {
		t.Run(spec.Name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, spec, opts); err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if !strings.Contains(buf.String(), "<svg") {
				t.Error("Expected SVG output")
			}
		})
	}
}

func TestRenderAnnotationsInSVG(t *testing.T) {
	spec := sampleSpecs()[1]
	opts := DefaultOptions()
	opts.Format = FormatSVG

	var buf bytes.Buffer
	if err := Render(&buf, spec, opts); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	for _, label := range spec.Labels {
		if !strings.Contains(buf.String(), label) {
			t.Errorf("Expected annotation %q in output", label)
		}
	}
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name      string
		spec      Spec
		wantError bool
	}{
		{
			name:      "valid",
			spec:      sampleSpecs()[0],
			wantError: false,
		},
		{
			name:      "missing name",
			spec:      Spec{Kind: KindBar, Categories: []string{"a"}, Series: []Series{{Values: []float64{1}}}},
			wantError: true,
		},
		{
			name:      "no categories",
			spec:      Spec{Name: "x", Kind: KindBar, Series: []Series{{}}},
			wantError: true,
		},
		{
			name:      "ragged series",
			spec:      Spec{Name: "x", Kind: KindLine, Categories: []string{"a", "b"}, Series: []Series{{Values: []float64{1}}}},
			wantError: true,
		},
		{
			name: "bar with two series",
			spec: Spec{Name: "x", Kind: KindBar, Categories: []string{"a"}, Series: []Series{
				{Values: []float64{1}}, {Values: []float64{2}},
			}},
			wantError: true,
		},
		{
			name:      "label count mismatch",
			spec:      Spec{Name: "x", Kind: KindBar, Categories: []string{"a"}, Series: []Series{{Values: []float64{1}}}, Labels: []string{}},
			wantError: true,
		},
		{
			name:      "unknown kind",
			spec:      Spec{Name: "x", Categories: []string{"a"}, Series: []Series{{Values: []float64{1}}}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestPivot(t *testing.T) {
	type row struct {
		year   string
		method string
		count  float64
	}
	rows := []row{
		{"2020", "Cash", 5},
		{"2020", "Credit Card", 3},
		{"2021", "Credit Card", 7},
		{"2021", "Mobile Payment", 1},
	}

	categories, series := Pivot(rows,
		func(r row) string { return r.year },
		func(r row) string { return r.method },
		func(r row) float64 { return r.count })

	if strings.Join(categories, ",") != "2020,2021" {
		t.Errorf("Expected categories 2020,2021, got %v", categories)
	}
	if len(series) != 3 {
		t.Fatalf("Expected 3 series, got %d", len(series))
	}

	want := map[string][]float64{
		"Cash":           {5, 0},
		"Credit Card":    {3, 7},
		"Mobile Payment": {0, 1},
	}
	for _, s := range series {
		w := want[s.Name]
		if len(s.Values) != 2 || s.Values[0] != w[0] || s.Values[1] != w[1] {
			t.Errorf("Series %s: expected %v, got %v", s.Name, w, s.Values)
		}
	}
	if series[0].Name != "Cash" {
		t.Errorf("Expected first-seen order, got %s first", series[0].Name)
	}
}

func TestPivotMissingYearPlotsAtZero(t *testing.T) {
	type row struct {
		year   string
		method string
		count  float64
	}
	// Mobile Payment has no transactions in 2021.
	rows := []row{
		{"2020", "Cash", 4},
		{"2020", "Mobile Payment", 2},
		{"2021", "Cash", 6},
		{"2022", "Cash", 5},
		{"2022", "Mobile Payment", 3},
	}
	categories, series := Pivot(rows,
		func(r row) string { return r.year },
		func(r row) string { return r.method },
		func(r row) float64 { return r.count })

	mobile := series[1]
	if mobile.Name != "Mobile Payment" || len(mobile.Values) != 3 || mobile.Values[1] != 0 {
		t.Fatalf("Expected Mobile Payment [2 0 3], got %s %v", mobile.Name, mobile.Values)
	}

	spec := Spec{
		Name:       "trend",
		Title:      "Trend",
		Kind:       KindLine,
		Categories: categories,
		Series:     series,
	}
	var buf bytes.Buffer
	if err := Render(&buf, spec, Options{Format: FormatSVG, Width: 640, Height: 400}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) string
		in   float64
		want string
	}{
		{"thousands", Thousands, 1234567.89, "1,234,567"},
		{"thousands small", Thousands, 999, "999"},
		{"integer rounds", Integer, 27.6, "28"},
		{"money", Money, 5519.82, "5,519.82"},
		{"money zero", Money, 0, "0.00"},
		{"money small", Money, 12.5, "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAxisFormatter(t *testing.T) {
	f := axisFormatter(true)
	if got := f(25000.75); got != "25,000" {
		t.Errorf("Expected 25,000, got %q", got)
	}
	if got := f("not a number"); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}

	plain := axisFormatter(false)
	if got := plain(2.5); got != "2.5" {
		t.Errorf("Expected 2.5, got %q", got)
	}
	if got := plain(3.0); got != "3" {
		t.Errorf("Expected 3, got %q", got)
	}
}

func TestBarSlots(t *testing.T) {
	canvas := chart.Box{Left: 0, Right: 100}

	w, s := barSlots(canvas, 4, 20, 5)
	if w != 20 || s != 5 {
		t.Errorf("Expected unscaled 20/5, got %d/%d", w, s)
	}

	// 10 bars of 20 cannot fit in 100 pixels: spacing drops to zero and
	// the bars shrink to share the width.
	w, s = barSlots(canvas, 10, 20, 5)
	if s != 0 || w != 10 {
		t.Errorf("Expected scaled 10/0, got %d/%d", w, s)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("svg"); err != nil || f != FormatSVG {
		t.Errorf("Expected svg, got %q (%v)", f, err)
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("Expected error for gif, got nil")
	}
}

func TestKindString(t *testing.T) {
	if KindHorizontalBar.String() != "horizontal-bar" {
		t.Errorf("Expected horizontal-bar, got %s", KindHorizontalBar)
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("Expected kind(99), got %s", Kind(99))
	}
}

func TestPresenter(t *testing.T) {
	dir := t.TempDir()
	p := NewPresenter(dir, DefaultOptions(), true)

	var opened []string
	p.SetOpener(func(ctx context.Context, path string) error {
		opened = append(opened, path)
		return nil
	})

	path, err := p.Present(context.Background(), sampleSpecs()[0])
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if path != filepath.Join(dir, "bar.png") {
		t.Errorf("Expected %s, got %s", filepath.Join(dir, "bar.png"), path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected chart file to exist: %v", err)
	}
	if len(opened) != 1 || opened[0] != path {
		t.Errorf("Expected viewer to be called with %s, got %v", path, opened)
	}
}

func TestPresenterSaveAsCreatesParent(t *testing.T) {
	dir := t.TempDir()
	p := NewPresenter(dir, DefaultOptions(), false)
	p.SetOpener(func(ctx context.Context, path string) error {
		t.Error("Viewer should not be called when show is disabled")
		return nil
	})

	target := filepath.Join(dir, "sales_sql_demo", "sales_summary.png")
	if err := p.SaveAs(context.Background(), sampleSpecs()[1], target); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("Expected chart file to exist: %v", err)
	}
}

func TestPresenterCancelled(t *testing.T) {
	p := NewPresenter(t.TempDir(), DefaultOptions(), false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Present(ctx, sampleSpecs()[0]); err == nil {
		t.Error("Expected error for cancelled context, got nil")
	}
}
