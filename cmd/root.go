package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/kmindi/fbissueexport/cmd/export"
	"github.com/kmindi/fbissueexport/cmd/list"
	"github.com/kmindi/fbissueexport/cmd/threshold"
	"github.com/kmindi/fbissueexport/cmd/version"
	"github.com/kmindi/fbissueexport/pkg/shared/config"
	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
	"github.com/kmindi/fbissueexport/pkg/shared/logger"
)

var (
	cfgFile   string
	AppConfig *config.Config
	Logger    hclog.Logger
	rootCmd   = &cobra.Command{
		Use:                   "fbissue [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Export FindBugs/SpotBugs findings as issues",
		Long: `fbissue exports a single FindBugs/SpotBugs finding as an issue to the platform
hosting the project: GitHub, Bitbucket or SourceForge. The platform is inferred
from the git remotes of the repository containing the offending source file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the config file (default $FBISSUE_CONFIG or config.yml).")
	rootCmd.AddCommand(export.ExportCmd)
	rootCmd.AddCommand(list.ListCmd)
	rootCmd.AddCommand(threshold.ThresholdCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}

	fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
	var cmdErr *sharederrors.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return 1
}

func initConfig() error {
	var err error

	if cfgFile == "" {
		cfgFile = config.SetThen(os.Getenv("FBISSUE_CONFIG"), config.DefaultConfigFile)
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", cfgFile, err)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return fmt.Errorf("invalid config %q: %w", cfgFile, err)
	}

	Logger = logger.NewLogger(AppConfig, "fbissue")
	Logger.Debug("config loaded", "path", cfgFile)

	export.Init(AppConfig, Logger.Named("export"))
	list.Init(AppConfig, Logger.Named("list"))
	threshold.Init(AppConfig, Logger.Named("threshold"))
	version.Init(AppConfig)
	return nil
}
