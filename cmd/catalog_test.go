package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shelve.dev/pkg/shelve/internal/domain"
	m "shelve.dev/pkg/shelve/internal/model"
)

func TestCatalogCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.CatalogArgs
	}{
		{
			name: "defaults",
			args: []string{"catalog"},
			want: domain.CatalogArgs{Root: m.Path(defaultSortRoot), MaxDepth: defaultSortDepth},
		},
		{
			name: "explicit root depth and exclude",
			args: []string{"catalog", "/home/me", "-d", "1", "--exclude", "/home/me/Downloads"},
			want: domain.CatalogArgs{Root: "/home/me", MaxDepth: 1, Exclude: "/home/me/Downloads"},
		},
		{
			name: "zero depth",
			args: []string{"catalog", "/srv", "--depth", "0"},
			want: domain.CatalogArgs{Root: "/srv", MaxDepth: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := newMockWorkflow(t)
			useWorkflow(t, mockWorkflow)

			cmd, logArgs := testRootCmd(t, newCatalogCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			mockWorkflow.On("Catalog", mock.Anything, tt.want).Return(nil)

			cmd.SetArgs(append(tt.args, logArgs...))
			require.NoError(t, cmd.Execute())
		})
	}
}
