package commands

import (
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the asc CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version string `json:"version" yaml:"version"`
				Commit  string `json:"commit"  yaml:"commit"`
				Built   string `json:"built"   yaml:"built"`
			}

			view := newTable("Property", "Value")
			view.add("Version", version)
			view.add("Commit", commit)
			view.add("Built", date)

			return render(cmd.OutOrStdout(), VersionInfo{Version: version, Commit: commit, Built: date}, view)
		},
	}
}
