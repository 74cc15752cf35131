package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shelve.dev/pkg/shelve/internal/domain"
	m "shelve.dev/pkg/shelve/internal/model"
)

func TestHistoryCmd(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, logArgs := testRootCmd(t, newHistoryCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("History", mock.Anything, domain.HistoryArgs{Reports: m.Path("runs")}).Return(nil)

	cmd.SetArgs(append([]string{"history", "-o", "runs"}, logArgs...))
	require.NoError(t, cmd.Execute())
}

func TestHistoryCmd_Errors(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, logArgs := testRootCmd(t, newHistoryCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	boom := errors.New("read reports dir")
	mockWorkflow.On("History", mock.Anything, mock.Anything).Return(boom)

	cmd.SetArgs(append([]string{"history"}, logArgs...))
	require.ErrorIs(t, cmd.Execute(), boom)
}

func TestHistoryCmd_RejectsArgs(t *testing.T) {
	mockWorkflow := newMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, logArgs := testRootCmd(t, newHistoryCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs(append([]string{"history", "extra"}, logArgs...))
	require.Error(t, cmd.Execute())
}
