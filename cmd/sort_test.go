package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shelve.dev/pkg/shelve/internal/controller"
	"shelve.dev/pkg/shelve/internal/domain"
	m "shelve.dev/pkg/shelve/internal/model"
)

func TestSortCmd_Defaults(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, logArgs := testRootCmd(t, newSortCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Sort", mock.Anything, domain.SortArgs{
		Source:   m.Path("inbox"),
		Root:     m.Path(defaultSortRoot),
		MaxDepth: defaultSortDepth,
		Limit:    defaultSortLimit,
		DryRun:   false,
		Reports:  m.Path(defaultReportsDir),
	}).Return(nil)

	cmd.SetArgs(append([]string{"sort", "inbox"}, logArgs...))
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestSortCmd_Flags(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, logArgs := testRootCmd(t, newSortCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Sort", mock.Anything, mock.MatchedBy(func(args domain.SortArgs) bool {
		return args.Source == m.Path("/home/me/Downloads") &&
			args.Root == m.Path("/home/me") &&
			args.MaxDepth == 2 &&
			args.Limit == 3 &&
			args.DryRun &&
			args.Reports == m.Path("/tmp/shelve-runs")
	})).Return(nil)

	cmd.SetArgs(append([]string{
		"sort", "/home/me/Downloads",
		"--to", "/home/me",
		"-d", "2",
		"-n", "3",
		"--dry-run",
		"-o", "/tmp/shelve-runs",
	}, logArgs...))
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestSortCmd_RequiresSource(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, logArgs := testRootCmd(t, newSortCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs(append([]string{"sort"}, logArgs...))
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source folder required")

	mockWorkflow.AssertNotCalled(t, "Sort", mock.Anything, mock.Anything)
}

func TestSortCmd_RejectsExtraArgs(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, logArgs := testRootCmd(t, newSortCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs(append([]string{"sort", "a", "b"}, logArgs...))
	require.Error(t, cmd.Execute())
}

func TestSortCmd_Interactive(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockPrompt := &mockPrompter{}
	originalPrompter := prompter
	prompter = mockPrompt
	t.Cleanup(func() { prompter = originalPrompter })

	cmd, logArgs := testRootCmd(t, newSortCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockPrompt.On("PromptSortParams", mock.Anything, mock.MatchedBy(func(defaults controller.SortParams) bool {
		return defaults.Source == "inbox" && defaults.MaxDepth == defaultSortDepth
	})).Return(controller.SortParams{
		Source:   "/data/inbox",
		Root:     "/data",
		MaxDepth: 1,
		Limit:    5,
		DryRun:   true,
	}, nil)

	mockWorkflow.On("Sort", mock.Anything, mock.MatchedBy(func(args domain.SortArgs) bool {
		return args.Source == m.Path("/data/inbox") &&
			args.Root == m.Path("/data") &&
			args.MaxDepth == 1 &&
			args.Limit == 5 &&
			args.DryRun
	})).Return(nil)

	cmd.SetArgs(append([]string{"sort", "inbox", "-i"}, logArgs...))
	err := cmd.Execute()
	require.NoError(t, err)

	mockPrompt.AssertExpectations(t)
}

func TestSortCmd_InteractiveCancelled(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockPrompt := &mockPrompter{}
	originalPrompter := prompter
	prompter = mockPrompt
	t.Cleanup(func() { prompter = originalPrompter })

	cmd, logArgs := testRootCmd(t, newSortCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cancelled := errors.New("prompt cancelled")
	mockPrompt.On("PromptSortParams", mock.Anything, mock.Anything).Return(controller.SortParams{}, cancelled)

	cmd.SetArgs(append([]string{"sort", "--interactive"}, logArgs...))
	err := cmd.Execute()
	require.ErrorIs(t, err, cancelled)

	mockWorkflow.AssertNotCalled(t, "Sort", mock.Anything, mock.Anything)
}

func TestSortCmd_WorkflowError(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, logArgs := testRootCmd(t, newSortCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	boom := errors.New("classifier unavailable")
	mockWorkflow.On("Sort", mock.Anything, mock.Anything).Return(boom)

	cmd.SetArgs(append([]string{"sort", "inbox"}, logArgs...))
	err := cmd.Execute()
	require.ErrorIs(t, err, boom)
}
