// Package cmd provides the root command and CLI setup for shelve.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"shelve.dev/pkg/shelve/internal/adapter"
	"shelve.dev/pkg/shelve/internal/controller"
	"shelve.dev/pkg/shelve/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var classifier adapter.ClassifierAdapter
var catalogBuilder domain.CatalogBuilder
var sorter domain.Sorter
var workflow domain.Workflow
var prompter controller.Prompter
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// verboseFlag mirrors log records to stderr at debug level.
var verboseFlag bool

// logFileFlag overrides the configured log file.
var logFileFlag string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	classifier = adapter.NewLazyClassifierAdapter(newClassifier)
	catalogBuilder = domain.NewCatalogBuilder(fsAdapter)
	sorter = domain.NewSorter(fsAdapter, classifier, ui)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		ui,
		catalogBuilder,
		sorter,
	)
	prompter = controller.NewFormPrompter(os.Stdin, os.Stdout)
}

// newClassifier builds the language-model classifier from the current configuration.
func newClassifier() (adapter.ClassifierAdapter, error) {
	llmClassifier, err := adapter.NewLLMClassifierAdapter(classifierConfig())
	if err != nil {
		return nil, err
	}

	return llmClassifier, nil
}

const rootLongDescription = `Shelve tidies a cluttered folder by moving its files, one at a time,
into the directory a language model picks for each of them.

Candidate directories are discovered below a destination root up to a
bounded depth. Hidden directories and the folder being sorted are never
offered as destinations.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "shelve",
		Short:        "Sort files into folders with a language model",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for sort run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level and mirror logs to stderr")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (default from config)")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the command context so a sort stops before its next file.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
