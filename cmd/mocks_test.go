package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"

	"shelve.dev/pkg/shelve/internal/controller"
	"shelve.dev/pkg/shelve/internal/domain"
)

type mockWorkflow struct {
	mock.Mock
}

func newMockWorkflow(t *testing.T) *mockWorkflow {
	w := &mockWorkflow{}
	w.Test(t)
	t.Cleanup(func() { w.AssertExpectations(t) })

	return w
}

func (w *mockWorkflow) Catalog(ctx context.Context, args domain.CatalogArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) Sort(ctx context.Context, args domain.SortArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) History(ctx context.Context, args domain.HistoryArgs) error {
	return w.Called(ctx, args).Error(0)
}

type mockPrompter struct {
	mock.Mock
}

func (p *mockPrompter) PromptSortParams(ctx context.Context, defaults controller.SortParams) (controller.SortParams, error) {
	args := p.Called(ctx, defaults)
	return args.Get(0).(controller.SortParams), args.Error(1)
}

// useWorkflow swaps the global workflow for the duration of the test.
func useWorkflow(t *testing.T, w domain.Workflow) {
	t.Helper()

	original := workflow
	workflow = w

	t.Cleanup(func() { workflow = original })
}

// testRootCmd builds a root command with sub attached whose log file lives
// in a temp dir.
func testRootCmd(t *testing.T, sub *cobra.Command) (*cobra.Command, []string) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(sub)

	// Viper keeps the last bound flag per key; rebind to untouched flags so
	// values set here do not leak into later tests.
	t.Cleanup(func() {
		configureRootFlags(&cobra.Command{})
		configureSortFlags(&cobra.Command{})
	})

	return cmd, []string{"--log-file", filepath.Join(t.TempDir(), "shelve.log")}
}
