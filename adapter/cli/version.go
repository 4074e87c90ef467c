package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set during build
	Version = "dev"
	// Commit is set during build
	Commit = "none"
	// BuildDate is set during build
	BuildDate = "unknown"
)

// VersionInfo is the machine-readable form of the version command.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("dayplan %s\n  commit: %s\n  built:  %s", v.Version, v.Commit, v.BuildDate)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeOutput(cmd, VersionInfo{Version: Version, Commit: Commit, BuildDate: BuildDate})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
