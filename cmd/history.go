package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shelve.dev/pkg/shelve/internal/domain"
	m "shelve.dev/pkg/shelve/internal/model"
)

// historyCmd represents the history command.
var historyCmd = newHistoryCmd()

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous sort runs",
		Long:  "List the sort run reports stored in the reports directory, oldest first.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.History(cmd.Context(), domain.HistoryArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
