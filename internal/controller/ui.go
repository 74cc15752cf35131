// Package controller provides the console adapters that report sorting progress.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "shelve.dev/pkg/shelve/internal/model"
)

// UI defines the interface for reporting catalog discovery and sort progress.
// Implementations can use different output methods (plain text, styled, etc).
type UI interface {
	DisplayCatalog(ctx context.Context, catalog m.Catalog)
	DisplayWarning(ctx context.Context, message string, err error)
	DisplaySelected(ctx context.Context, iteration int, file m.Path)
	DisplayDecision(ctx context.Context, file m.Path, destination m.Path)
	DisplayMove(ctx context.Context, move m.Move)
	DisplayOutcome(ctx context.Context, report m.RunReport)
	DisplayReports(ctx context.Context, reports []m.RunReport) error
}

// NewUI returns a styled UI for terminals and a plain one otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewStyledUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
