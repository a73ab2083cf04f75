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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pgEdge/pgedge-retail-report/internal/logging"
)

// Presenter writes charts to disk and optionally shows them.
type Presenter struct {
	outputDir string
	opts      Options
	show      bool
	open      Opener
}

// NewPresenter creates a presenter writing into outputDir.
func NewPresenter(outputDir string, opts Options, show bool) *Presenter {
	return &Presenter{
		outputDir: outputDir,
		opts:      opts,
		show:      show,
		open:      OpenFile,
	}
}

// SetOpener replaces the viewer used when show is enabled.
func (p *Presenter) SetOpener(open Opener) {
	p.open = open
}

// Present renders spec to <outputDir>/<name>.<format> and returns the path.
func (p *Presenter) Present(ctx context.Context, spec Spec) (string, error) {
	path := filepath.Join(p.outputDir, spec.Name+"."+string(p.format()))
	if err := p.SaveAs(ctx, spec, path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveAs renders spec to path, creating the parent directory, and shows
// it when the presenter was asked to.
func (p *Presenter) SaveAs(ctx context.Context, spec Spec, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create chart directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	opts := p.opts
	opts.Format = p.format()
	if err := Render(f, spec, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}

	logging.Info().
		Str("chart", spec.Name).
		Str("path", path).
		Msg("Chart written")

	if p.show && p.open != nil {
		if err := p.open(ctx, path); err != nil {
			return fmt.Errorf("failed to show chart %s: %w", spec.Name, err)
		}
	}
	return nil
}

func (p *Presenter) format() Format {
	if p.opts.Format == "" {
		return FormatPNG
	}
	return p.opts.Format
}
