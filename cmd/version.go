package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const (
	shortFlagName = "short"
	develVersion  = "(devel)"
	revisionWidth = 12
)

// buildDetails is the subset of the embedded build info that version prints.
type buildDetails struct {
	Version   string
	Module    string
	GoVersion string
	Revision  string
	Time      string
	Modified  bool
}

func readBuildDetails(info *debug.BuildInfo) buildDetails {
	details := buildDetails{Version: develVersion}
	if info == nil {
		return details
	}

	if info.Main.Version != "" {
		details.Version = info.Main.Version
	}

	details.Module = info.Main.Path
	details.GoVersion = info.GoVersion

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			details.Revision = setting.Value
		case "vcs.time":
			details.Time = setting.Value
		case "vcs.modified":
			details.Modified = setting.Value == "true"
		}
	}

	return details
}

// lines renders the details as tab-separated label and value pairs, leaving
// out anything the binary was built without.
func (d buildDetails) lines() []string {
	lines := []string{"shelve version\t" + d.Version}

	if d.Module != "" {
		lines = append(lines, "module\t"+d.Module)
	}

	if d.GoVersion != "" {
		lines = append(lines, "go version\t"+d.GoVersion)
	}

	if d.Revision != "" {
		revision := d.Revision
		if len(revision) > revisionWidth {
			revision = revision[:revisionWidth]
		}

		if d.Modified {
			revision += " (modified)"
		}

		lines = append(lines, "commit\t"+revision)
	}

	if d.Time != "" {
		lines = append(lines, "built\t"+d.Time)
	}

	return lines
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long: `Displays the shelve build version, the module it was built from, the Go
toolchain and, when available, the commit the binary was built at.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				info = nil
			}

			details := readBuildDetails(info)

			if short, _ := cmd.Flags().GetBool(shortFlagName); short {
				cmd.Println(details.Version)
				return
			}

			for _, line := range details.lines() {
				cmd.Println(line)
			}
		},
	}

	cmd.Flags().Bool(shortFlagName, false, "print only the version")

	return cmd
}

var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
