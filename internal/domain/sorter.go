package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"shelve.dev/pkg/shelve/internal/adapter"
	"shelve.dev/pkg/shelve/internal/controller"
	m "shelve.dev/pkg/shelve/internal/model"
)

// RunArgs contains the arguments for one pass of the sort loop.
type RunArgs struct {
	Source  m.Path
	Catalog m.Catalog
	Limit   int
	DryRun  bool
}

// Sorter moves files out of a source folder one at a time, asking the
// classifier for each destination.
type Sorter interface {
	Run(ctx context.Context, args RunArgs) (m.RunReport, error)
}

type sorter struct {
	fsAdapter  adapter.SourceFSAdapter
	classifier adapter.ClassifierAdapter
	ui         controller.UI
	now        func() time.Time
}

// NewSorter constructs a Sorter from its collaborators.
func NewSorter(fsAdapter adapter.SourceFSAdapter, classifier adapter.ClassifierAdapter, ui controller.UI) Sorter {
	return &sorter{
		fsAdapter:  fsAdapter,
		classifier: classifier,
		ui:         ui,
		now:        time.Now,
	}
}

// sortRun is the mutable state of a single Run call.
type sortRun struct {
	args       RunArgs
	candidates []m.Path
	planned    map[m.Path]bool
	report     m.RunReport
	iteration  int
	task       m.SortTask
}

// Run drives the SELECT, CLASSIFY, MOVE loop until the source has no file
// left or args.Limit iterations were spent. A classifier error aborts the
// loop; the report collected so far is returned with it.
func (s *sorter) Run(ctx context.Context, args RunArgs) (m.RunReport, error) {
	if args.Limit < 0 {
		return m.RunReport{}, fmt.Errorf("iteration limit must not be negative, got %d", args.Limit)
	}

	run := &sortRun{
		args:       args,
		candidates: args.Catalog.Paths(),
		planned:    make(map[m.Path]bool),
		report: m.RunReport{
			ID:          uuid.NewString(),
			Source:      args.Source,
			Root:        args.Catalog.Root,
			Limit:       args.Limit,
			DryRun:      args.DryRun,
			StartedAt:   s.now(),
			CatalogSize: args.Catalog.Len(),
		},
	}

	state := m.StateSelect
	if args.Limit == 0 {
		state = m.StateCapReached
	}

	var err error

	for !state.Terminal() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			break
		}

		state, err = s.step(ctx, run, state)
		if err != nil {
			break
		}
	}

	run.report.FinishedAt = s.now()

	if err != nil {
		run.report.Error = err.Error()
		slog.Error("sort run aborted", "source", args.Source, "iteration", run.iteration, "error", err)

		return run.report, err
	}

	run.report.Outcome = state
	slog.Info("sort run finished", "source", args.Source, "outcome", state,
		"iterations", run.iteration, "moved", run.report.Count(m.MoveMoved))

	return run.report, nil
}

func (s *sorter) step(ctx context.Context, run *sortRun, state m.SortState) (m.SortState, error) {
	switch state {
	case m.StateSelect:
		file, ok := s.selectFile(ctx, run)
		if !ok {
			return m.StateDone, nil
		}

		run.iteration++
		run.task = m.SortTask{File: file}
		s.ui.DisplaySelected(ctx, run.iteration, file)

		return m.StateClassify, nil

	case m.StateClassify:
		destination, err := s.classifier.Classify(ctx, run.candidates, run.task.File)
		if err != nil {
			return state, fmt.Errorf("classify %s: %w", run.task.File, err)
		}

		run.task.Destination = destination
		run.task.Target = s.fsAdapter.JoinPath(string(destination), filepath.Base(string(run.task.File)))
		s.ui.DisplayDecision(ctx, run.task.File, destination)

		return m.StateMove, nil

	case m.StateMove:
		move := s.move(ctx, run)
		run.report.Moves = append(run.report.Moves, move)
		s.ui.DisplayMove(ctx, move)

		if !s.hasFile(ctx, run) {
			return m.StateDone, nil
		}

		if run.iteration >= run.args.Limit {
			return m.StateCapReached, nil
		}

		return m.StateSelect, nil
	}

	return state, fmt.Errorf("unexpected sort state %q", state)
}

// selectFile returns the first file of the source in listing order, hidden
// files included.
// An unreadable source is reported and treated as empty.
func (s *sorter) selectFile(ctx context.Context, run *sortRun) (m.Path, bool) {
	entries, err := s.fsAdapter.ListDir(ctx, run.args.Source)
	if err != nil {
		slog.Warn("cannot read source folder", "source", run.args.Source, "error", err)
		s.ui.DisplayWarning(ctx, fmt.Sprintf("cannot read %s", run.args.Source), err)

		return "", false
	}

	for _, entry := range entries {
		if entry.IsDir || run.planned[entry.Path] {
			continue
		}

		return entry.Path, true
	}

	return "", false
}

func (s *sorter) hasFile(ctx context.Context, run *sortRun) bool {
	entries, err := s.fsAdapter.ListDir(ctx, run.args.Source)
	if err != nil {
		// The next SELECT reports the failure and ends the run.
		return true
	}

	for _, entry := range entries {
		if !entry.IsDir && !run.planned[entry.Path] {
			return true
		}
	}

	return false
}

func (s *sorter) move(ctx context.Context, run *sortRun) m.Move {
	move := m.Move{Iteration: run.iteration, Task: run.task}

	if run.args.DryRun {
		run.planned[run.task.File] = true
		move.Status = m.MovePlanned

		slog.Info("dry run: skipping move", "file", run.task.File, "target", run.task.Target)

		return move
	}

	if err := s.fsAdapter.Rename(ctx, run.task.File, run.task.Target); err != nil {
		move.Status = m.MoveFailed
		move.Error = err.Error()

		slog.Warn("move failed", "file", run.task.File, "target", run.task.Target, "error", err)

		return move
	}

	move.Status = m.MoveMoved
	slog.Info("moved file", "file", run.task.File, "target", run.task.Target)

	return move
}
