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
	"os/exec"
	"runtime"
)

// Opener displays a written chart file and returns once the viewer exits.
type Opener func(ctx context.Context, path string) error

// OpenFile hands path to the platform's default viewer.
func OpenFile(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", "-W", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "/wait", "", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	return cmd.Run()
}
