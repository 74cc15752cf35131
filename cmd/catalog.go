package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shelve.dev/pkg/shelve/internal/domain"
	m "shelve.dev/pkg/shelve/internal/model"
)

var catalogDepthFlag int
var catalogExcludeFlag string

// catalogCmd represents the catalog command.
var catalogCmd = newCatalogCmd()

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog [root]",
		Short: "List the directories offered as destinations",
		Long: `List the directories below ROOT (default: the configured sort root) that a
sort would offer to the classifier, without classifying or moving anything.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := viper.GetString(sortRootKey)
			if len(args) > 0 {
				root = args[0]
			}

			// --depth is shared with sort, so only an explicit value overrides the config.
			depth := viper.GetInt(sortDepthKey)
			if cmd.Flags().Changed(depthFlagName) {
				depth = catalogDepthFlag
			}

			return workflow.Catalog(cmd.Context(), domain.CatalogArgs{
				Root:     m.Path(root),
				MaxDepth: depth,
				Exclude:  m.Path(catalogExcludeFlag),
			})
		},
	}

	cmd.Flags().IntVarP(&catalogDepthFlag, depthFlagName, "d", defaultSortDepth, "how many levels below the root to list")
	cmd.Flags().StringVarP(&catalogExcludeFlag, excludeFlagName, "e", "", "folder to leave out together with its ancestors")

	return cmd
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
