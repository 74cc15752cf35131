package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shelve.dev/pkg/shelve/internal/controller"
	"shelve.dev/pkg/shelve/internal/domain"
	m "shelve.dev/pkg/shelve/internal/model"
)

const sortLongDescription = `Sort the files of SOURCE into the directories found below the
destination root.

Each iteration picks the next file, asks the classifier for its directory
and moves it there. The run stops when SOURCE holds no more files or the
iteration limit is spent. With --dry-run the moves are only reported.`

var sortToFlag string
var sortDepthFlag int
var sortLimitFlag int
var sortDryRunFlag bool
var sortInteractiveFlag bool

// sortCmd represents the sort command.
var sortCmd = newSortCmd()

func newSortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [source]",
		Short: "Move files from a folder into classified directories",
		Long:  sortLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := controller.SortParams{
				Root:     viper.GetString(sortRootKey),
				MaxDepth: viper.GetInt(sortDepthKey),
				Limit:    viper.GetInt(sortLimitKey),
				DryRun:   viper.GetBool(sortDryRunKey),
			}

			if len(args) > 0 {
				params.Source = args[0]
			}

			if sortInteractiveFlag {
				prompted, err := prompter.PromptSortParams(cmd.Context(), params)
				if err != nil {
					return err
				}

				params = prompted
			}

			if params.Source == "" {
				return errors.New("source folder required: pass it as an argument or use --interactive")
			}

			return workflow.Sort(cmd.Context(), domain.SortArgs{
				Source:   m.Path(params.Source),
				Root:     m.Path(params.Root),
				MaxDepth: params.MaxDepth,
				Limit:    params.Limit,
				DryRun:   params.DryRun,
				Reports:  m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	configureSortFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(sortCmd)
}

func configureSortFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sortToFlag, toFlagName, "t", viper.GetString(sortRootKey), "root of the destination directories")
	bindFlagToConfig(cmd.Flags().Lookup(toFlagName), sortRootKey)

	cmd.Flags().IntVarP(&sortDepthFlag, depthFlagName, "d", viper.GetInt(sortDepthKey), "how many levels below the root to offer as destinations")
	bindFlagToConfig(cmd.Flags().Lookup(depthFlagName), sortDepthKey)

	cmd.Flags().IntVarP(&sortLimitFlag, limitFlagName, "n", viper.GetInt(sortLimitKey), "maximum number of files to process")
	bindFlagToConfig(cmd.Flags().Lookup(limitFlagName), sortLimitKey)

	cmd.Flags().BoolVar(&sortDryRunFlag, dryRunFlagName, viper.GetBool(sortDryRunKey), "report moves without performing them")
	bindFlagToConfig(cmd.Flags().Lookup(dryRunFlagName), sortDryRunKey)

	cmd.Flags().BoolVarP(&sortInteractiveFlag, interactiveFlagName, "i", false, "ask for the run parameters in a form")
}
