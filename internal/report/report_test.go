//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pgEdge/pgedge-retail-report/internal/charts"
	"github.com/pgEdge/pgedge-retail-report/internal/db"
)

type recordingPresenter struct {
	names []string
	err   error
}

func (p *recordingPresenter) Present(ctx context.Context, spec charts.Spec) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.names = append(p.names, spec.Name)
	return spec.Name + ".png", nil
}

func staticQuery(name string, rows [][]string) Definition {
	return Definition{
		Name:  name,
		Title: strings.ToUpper(name),
		Kind:  charts.KindBar,
		Run: func(ctx context.Context, conn db.DB) (Output, error) {
			return Output{
				Table: Table{Header: []string{"Key", "Value"}, Rows: rows},
				Chart: charts.Spec{Name: name, Kind: charts.KindBar},
			}, nil
		},
	}
}

func resetRegistry(t *testing.T) {
	t.Helper()
	mu.Lock()
	registry = make(map[string]Definition)
	order = nil
	mu.Unlock()
}

func TestRegistryOrder(t *testing.T) {
	resetRegistry(t)

	Register(staticQuery("zeta", nil))
	Register(staticQuery("alpha", nil))
	Register(staticQuery("mid", nil))
	Register(staticQuery("alpha", [][]string{{"a", "1"}}))

	names := List()
	if strings.Join(names, ",") != "zeta,alpha,mid" {
		t.Errorf("Expected registration order zeta,alpha,mid, got %v", names)
	}

	all := All()
	if len(all) != 3 {
		t.Fatalf("Expected 3 definitions, got %d", len(all))
	}

	def, err := Get("alpha")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	out, _ := def.Run(context.Background(), nil)
	if len(out.Table.Rows) != 1 {
		t.Error("Expected re-registration to replace the definition")
	}
}

func TestGetUnknown(t *testing.T) {
	resetRegistry(t)

	_, err := Get("nonexistent")
	if !errors.Is(err, ErrUnknownQuery) {
		t.Errorf("Expected ErrUnknownQuery, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	resetRegistry(t)
	Register(staticQuery("first", nil))
	Register(staticQuery("second", nil))
	Register(staticQuery("third", nil))

	tests := []struct {
		name      string
		in        []string
		want      string
		wantError bool
	}{
		{"all", nil, "first,second,third", false},
		{"catalog order kept", []string{"third", "first"}, "first,third", false},
		{"unknown", []string{"first", "bogus"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := Select(tt.in)
			if tt.wantError {
				if !errors.Is(err, ErrUnknownQuery) {
					t.Errorf("Expected ErrUnknownQuery, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			var got []string
			for _, d := range defs {
				got = append(got, d.Name)
			}
			if strings.Join(got, ",") != tt.want {
				t.Errorf("Expected %s, got %v", tt.want, got)
			}
		})
	}
}

func TestRunnerPrintsAndPresents(t *testing.T) {
	var out bytes.Buffer
	p := &recordingPresenter{}
	r := NewRunner(nil, &out, p)

	defs := []Definition{
		staticQuery("city_sales", [][]string{{"Boston", "12"}}),
		staticQuery("empty", nil),
		staticQuery("top_buyers", [][]string{{"Ada", "30.00"}}),
	}

	if err := r.Run(context.Background(), defs); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if strings.Join(p.names, ",") != "city_sales,top_buyers" {
		t.Errorf("Expected charts for non-empty results only, got %v", p.names)
	}
	text := out.String()
	for _, want := range []string{"CITY_SALES", "Boston", "EMPTY", "TOP_BUYERS", "30.00"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestRunnerStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	failing := Definition{
		Name: "failing",
		Run: func(ctx context.Context, conn db.DB) (Output, error) {
			calls++
			return Output{}, boom
		},
	}

	r := NewRunner(nil, &bytes.Buffer{}, nil)
	err := r.Run(context.Background(), []Definition{failing, failing})
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped query error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected run to stop after first failure, got %d calls", calls)
	}
}

func TestRunnerPresenterError(t *testing.T) {
	boom := errors.New("disk full")
	r := NewRunner(nil, &bytes.Buffer{}, &recordingPresenter{err: boom})

	err := r.Run(context.Background(), []Definition{staticQuery("q", [][]string{{"a", "1"}})})
	if !errors.Is(err, boom) {
		t.Errorf("Expected presenter error, got %v", err)
	}
}

func TestWriteTable(t *testing.T) {
	var out bytes.Buffer
	WriteTable(&out, Table{
		Header: []string{"Payment_Method", "Transactions"},
		Rows:   [][]string{{"Cash", "1,024"}},
	})

	text := out.String()
	if !strings.Contains(text, "Payment_Method") {
		t.Error("Expected header to be printed verbatim")
	}
	if !strings.Contains(text, "1,024") {
		t.Error("Expected row to be printed")
	}
}
