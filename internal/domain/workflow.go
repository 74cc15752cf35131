// Package domain implements directory discovery and the sort loop.
package domain

import (
	"context"
	"fmt"
	"log/slog"

	"shelve.dev/pkg/shelve/internal/adapter"
	"shelve.dev/pkg/shelve/internal/controller"
	m "shelve.dev/pkg/shelve/internal/model"
)

// CatalogArgs contains the arguments for listing candidate directories.
type CatalogArgs struct {
	Root     m.Path
	MaxDepth int
	Exclude  m.Path
}

// SortArgs contains the arguments for a sort run.
type SortArgs struct {
	Source   m.Path
	Root     m.Path
	MaxDepth int
	Limit    int
	DryRun   bool
	Reports  m.Path
}

// HistoryArgs contains the arguments for listing previous runs.
type HistoryArgs struct {
	Reports m.Path
}

// Workflow is the entry point used by the CLI commands.
type Workflow interface {
	Catalog(ctx context.Context, args CatalogArgs) error
	Sort(ctx context.Context, args SortArgs) error
	History(ctx context.Context, args HistoryArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	CatalogBuilder
	Sorter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	catalogBuilder CatalogBuilder,
	sorter Sorter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		CatalogBuilder:  catalogBuilder,
		Sorter:          sorter,
	}
}

// Catalog builds and prints the candidate directories below args.Root.
func (w *workflow) Catalog(ctx context.Context, args CatalogArgs) error {
	catalog, err := w.buildCatalog(ctx, args.Root, args.MaxDepth, args.Exclude)
	if err != nil {
		return err
	}

	w.DisplayCatalog(ctx, catalog)

	return nil
}

// Sort builds the catalog once, runs the sort loop against it and stores
// the run report. The report is stored even when the loop aborts.
func (w *workflow) Sort(ctx context.Context, args SortArgs) error {
	source, err := w.resolveDir(ctx, args.Source)
	if err != nil {
		// The loop reports the unreadable source itself and ends as done.
		slog.Warn("cannot resolve source folder", "source", args.Source, "error", err)
		source = args.Source
	}

	catalog, err := w.buildCatalog(ctx, args.Root, args.MaxDepth, source)
	if err != nil {
		return err
	}

	w.DisplayCatalog(ctx, catalog)

	report, runErr := w.Run(ctx, RunArgs{
		Source:  source,
		Catalog: catalog,
		Limit:   args.Limit,
		DryRun:  args.DryRun,
	})
	report.MaxDepth = args.MaxDepth

	// An interrupted run still leaves a report behind.
	w.saveReport(context.WithoutCancel(ctx), args.Reports, report)

	if runErr != nil {
		return fmt.Errorf("sort %s: %w", source, runErr)
	}

	w.DisplayOutcome(ctx, report)

	return nil
}

// History prints previously stored run reports.
func (w *workflow) History(ctx context.Context, args HistoryArgs) error {
	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		slog.Error("Failed to load reports", "reports", args.Reports, "error", err)
		return fmt.Errorf("load reports: %w", err)
	}

	return w.DisplayReports(ctx, reports)
}

func (w *workflow) buildCatalog(ctx context.Context, root m.Path, maxDepth int, exclude m.Path) (m.Catalog, error) {
	catalog, err := w.Build(ctx, root, maxDepth)
	if err != nil {
		slog.Error("Failed to build catalog", "root", root, "error", err)
		return m.Catalog{}, fmt.Errorf("build catalog: %w", err)
	}

	for _, skipped := range catalog.Skipped {
		w.DisplayWarning(ctx, fmt.Sprintf("skipped %s", skipped.Path), fmt.Errorf("%s", skipped.Err))
	}

	if exclude == "" {
		return catalog, nil
	}

	resolved, err := w.ResolvePath(ctx, exclude)
	if err != nil {
		// A folder that does not exist cannot conflict with a catalog entry.
		slog.Debug("exclude path not resolvable", "path", exclude, "error", err)
		return ExcludeSource(catalog, exclude), nil
	}

	return ExcludeSource(catalog, resolved), nil
}

func (w *workflow) resolveDir(ctx context.Context, path m.Path) (m.Path, error) {
	resolved, err := w.ResolvePath(ctx, path)
	if err != nil {
		return "", err
	}

	info, err := w.FileInfo(ctx, resolved)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", resolved)
	}

	return resolved, nil
}

func (w *workflow) saveReport(ctx context.Context, dir m.Path, report m.RunReport) {
	if dir == "" || report.ID == "" {
		return
	}

	path, err := w.SaveReport(ctx, dir, report)
	if err != nil {
		slog.Error("Failed to save run report", "reports", dir, "error", err)
		w.DisplayWarning(ctx, "run report not saved", err)

		return
	}

	slog.Debug("run report saved", "path", path)
}
