package threshold

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/kmindi/fbissueexport/internal/findings"
	"github.com/kmindi/fbissueexport/internal/preferences"
	"github.com/kmindi/fbissueexport/pkg/shared/config"
	"github.com/kmindi/fbissueexport/pkg/shared/errors"
	"github.com/kmindi/fbissueexport/pkg/shared/files"
)

// RunOptionsThreshold holds the arguments of the threshold command.
type RunOptionsThreshold struct {
	ProjectRoot string
	Value       int
}

var (
	AppConfig        *config.Config
	logger           hclog.Logger
	thresholdOptions RunOptionsThreshold
)

// ThresholdCmd reads or writes the project's confidence threshold.
var ThresholdCmd = &cobra.Command{
	Use:                   "threshold [--project DIR] [VALUE]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Show or set the confidence threshold of a project",
	Long: fmt.Sprintf(`Show or set the confidence threshold stored in %s of the project root.

Findings with a priority at or above the threshold (1 high .. 5 ignore) need confirmation
before they are exported. The default is %d.`, preferences.FileName, preferences.DefaultConfidenceThreshold),
	Example: `  # Show the threshold of the project in the current directory
  fbissue threshold

  # Only ask for low confidence findings and worse
  fbissue threshold --project ~/src/widgets 3`,
	RunE: runThresholdCommand,
}

// Init initializes the global configuration and logger.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runThresholdCommand(cmd *cobra.Command, args []string) error {
	if err := validateThresholdArgs(&thresholdOptions, args); err != nil {
		logger.Error("invalid threshold arguments", "error", err)
		return errors.NewCommandError(thresholdOptions, fmt.Errorf("invalid threshold arguments: %w", err), 1)
	}

	store := preferences.NewStore(thresholdOptions.ProjectRoot)
	if thresholdOptions.Value != 0 {
		if err := store.SetConfidenceThreshold(thresholdOptions.Value); err != nil {
			return errors.NewCommandError(thresholdOptions, err, 2)
		}
		logger.Info("confidence threshold updated", "path", store.Path(), "value", thresholdOptions.Value)
	}

	value, err := store.ConfidenceThreshold()
	if err != nil {
		return errors.NewCommandError(thresholdOptions, err, 2)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d (%s)\n", value, findings.PriorityName(value))
	return nil
}

// validateThresholdArgs resolves the project root and parses the optional value.
func validateThresholdArgs(options *RunOptionsThreshold, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}

	options.Value = 0
	if len(args) == 1 {
		value, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("threshold %q is not a number", args[0])
		}
		if err := preferences.ValidateThreshold(value); err != nil {
			return err
		}
		options.Value = value
	}

	root, err := files.AbsPath(config.SetThen(options.ProjectRoot, "."))
	if err != nil {
		return err
	}
	if err := files.ValidateDir(root); err != nil {
		return fmt.Errorf("invalid project directory: %w", err)
	}
	options.ProjectRoot = root
	return nil
}

func init() {
	ThresholdCmd.Flags().StringVar(&thresholdOptions.ProjectRoot, "project", "", "Project root directory (default current directory).")
	ThresholdCmd.Flags().BoolP("help", "h", false, "Show help for the threshold command.")
}
