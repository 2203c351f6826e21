package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kmindi/fbissueexport/pkg/shared"
	"github.com/kmindi/fbissueexport/pkg/shared/config"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = runtime.Version()
	BuildTime     = "unknown"
)

// Versions holds version information of the binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := Versions{
				Version:       CoreVersion,
				GolangVersion: GolangVersion,
				BuildTime:     BuildTime,
			}
			if err := shared.PrintResultAsJSON(cmd.OutOrStdout(), v); err != nil {
				return fmt.Errorf("failed to print version: %w", err)
			}
			return nil
		},
	}
}
