package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shelve.dev/pkg/shelve/internal/adapter"
	m "shelve.dev/pkg/shelve/internal/model"
)

// mockClassifier is a testify mock for adapter.ClassifierAdapter.
type mockClassifier struct {
	mock.Mock
}

func (c *mockClassifier) Classify(ctx context.Context, catalog []m.Path, file m.Path) (m.Path, error) {
	args := c.Called(ctx, catalog, file)
	return args.Get(0).(m.Path), args.Error(1)
}

// recordingUI captures everything the domain reports.
type recordingUI struct {
	catalogs  []m.Catalog
	warnings  []string
	selected  []m.Path
	decisions []m.Path
	moves     []m.Move
	outcomes  []m.RunReport
	reports   [][]m.RunReport
}

func (u *recordingUI) DisplayCatalog(_ context.Context, catalog m.Catalog) {
	u.catalogs = append(u.catalogs, catalog)
}

func (u *recordingUI) DisplayWarning(_ context.Context, message string, _ error) {
	u.warnings = append(u.warnings, message)
}

func (u *recordingUI) DisplaySelected(_ context.Context, _ int, file m.Path) {
	u.selected = append(u.selected, file)
}

func (u *recordingUI) DisplayDecision(_ context.Context, _ m.Path, destination m.Path) {
	u.decisions = append(u.decisions, destination)
}

func (u *recordingUI) DisplayMove(_ context.Context, move m.Move) {
	u.moves = append(u.moves, move)
}

func (u *recordingUI) DisplayOutcome(_ context.Context, report m.RunReport) {
	u.outcomes = append(u.outcomes, report)
}

func (u *recordingUI) DisplayReports(_ context.Context, reports []m.RunReport) error {
	u.reports = append(u.reports, reports)
	return nil
}

// unlistableFS behaves like the wrapped adapter except that listing any
// directory in failing returns an error.
type unlistableFS struct {
	adapter.SourceFSAdapter
	failing map[m.Path]bool
}

var errUnlistable = errors.New("permission denied")

func (f *unlistableFS) ListDir(ctx context.Context, dir m.Path) ([]m.Location, error) {
	if f.failing[dir] {
		return nil, errUnlistable
	}

	return f.SourceFSAdapter.ListDir(ctx, dir)
}

// resolvedTempDir returns a temp dir with symlinks evaluated, matching the
// paths the catalog builder produces.
func resolvedTempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return dir
}

func mkdirs(t *testing.T, root string, rels ...string) {
	t.Helper()

	for _, rel := range rels {
		require.NoError(t, os.MkdirAll(filepath.Join(root, rel), 0o755))
	}
}

func writeFiles(t *testing.T, root string, rels ...string) {
	t.Helper()

	for _, rel := range rels {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(rel), 0o644))
	}
}

func relPaths(t *testing.T, root string, catalog m.Catalog) []string {
	t.Helper()

	rels := make([]string, 0, catalog.Len())

	for _, entry := range catalog.Entries {
		rel, err := filepath.Rel(root, string(entry.Path))
		require.NoError(t, err)

		rels = append(rels, filepath.ToSlash(rel))
	}

	return rels
}
