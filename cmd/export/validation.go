package export

import (
	"fmt"

	"github.com/kmindi/fbissueexport/pkg/shared/files"
	"github.com/kmindi/fbissueexport/pkg/shared/vcsurl"
)

// validateExportArgs validates the arguments and normalizes paths and the remote URL.
func validateExportArgs(options *RunOptionsExport, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}
	if len(args) == 1 {
		if options.Hash != "" {
			return fmt.Errorf("you cannot use a 'bug' flag and a positional hash at the same time")
		}
		options.Hash = args[0]
	}
	if options.Hash == "" {
		return fmt.Errorf("either the 'bug' flag or a positional hash must be specified")
	}

	if options.ReportPath == "" {
		return fmt.Errorf("the 'report' flag must be specified")
	}
	reportPath, err := files.AbsPath(options.ReportPath)
	if err != nil {
		return err
	}
	if err := files.ValidatePath(reportPath); err != nil {
		return fmt.Errorf("invalid report path: %w", err)
	}
	options.ReportPath = reportPath

	if options.ProjectRoot == "" {
		options.ProjectRoot = "."
	}
	projectRoot, err := files.AbsPath(options.ProjectRoot)
	if err != nil {
		return err
	}
	if err := files.ValidateDir(projectRoot); err != nil {
		return fmt.Errorf("invalid project directory: %w", err)
	}
	options.ProjectRoot = projectRoot

	if options.RemoteURL != "" {
		normalized, err := vcsurl.Normalize(options.RemoteURL)
		if err != nil {
			return err
		}
		options.RemoteURL = normalized
	}

	if options.Print && options.RemoteURL != "" {
		return fmt.Errorf("the 'print' flag does not export, 'remote' has no effect with it")
	}
	return nil
}
