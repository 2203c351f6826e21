package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/kmindi/fbissueexport/internal/browser"
	"github.com/kmindi/fbissueexport/internal/coordinator"
	"github.com/kmindi/fbissueexport/internal/exporter"
	"github.com/kmindi/fbissueexport/internal/findings"
	"github.com/kmindi/fbissueexport/internal/formatter"
	"github.com/kmindi/fbissueexport/internal/git"
	"github.com/kmindi/fbissueexport/internal/preferences"
	"github.com/kmindi/fbissueexport/internal/prompt"
	"github.com/kmindi/fbissueexport/pkg/shared"
	"github.com/kmindi/fbissueexport/pkg/shared/config"
	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
	"github.com/kmindi/fbissueexport/pkg/shared/httpclient"
)

// RunOptionsExport holds the arguments of the export command.
type RunOptionsExport struct {
	ReportPath  string
	Hash        string
	ProjectRoot string
	SourceDirs  []string
	RemoteURL   string
	Yes         bool
	Print       bool
	NoBrowser   bool
}

// Global variables for configuration and command arguments
var (
	AppConfig     *config.Config
	logger        hclog.Logger
	exportOptions RunOptionsExport

	exampleExportUsage = `  # Export a finding of a SpotBugs XML report, the platform is taken from the git remotes
  fbissue export --report target/spotbugsXml.xml --bug 7d3b1c2f9a0e4b8d

  # A unique prefix of the instance hash is enough
  fbissue export --report target/spotbugsXml.xml 7d3b

  # Export to an explicit remote without asking for low confidence findings
  fbissue export --report build/spotbugs.sarif --bug 7d3b --remote git@github.com:acme/widgets.git --yes

  # Print the issue instead of exporting it
  fbissue export --report target/spotbugsXml.xml --bug 7d3b --print`
)

// ExportCmd represents the export command.
var ExportCmd = &cobra.Command{
	Use:                   "export --report PATH {--bug HASH | HASH} [--project DIR] [--source-dir DIR]... [--remote URL] [--yes] [--print] [--no-browser]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleExportUsage,
	Short:                 "Export one finding as an issue",
	Long: `Export one finding as an issue on GitHub, Bitbucket or SourceForge.

Findings whose confidence is at or below the project's threshold (see 'fbissue threshold')
are exported only after confirmation. GitHub and SourceForge issues are opened as a
prefilled form in the browser, Bitbucket issues are submitted directly.`,
	RunE: runExportCommand,
}

// Init initializes the global configuration and logger.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runExportCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if err := validateExportArgs(&exportOptions, args); err != nil {
		logger.Error("invalid export arguments", "error", err)
		return sharederrors.NewCommandError(exportOptions, fmt.Errorf("invalid export arguments: %w", err), 1)
	}

	report, err := findings.LoadReport(exportOptions.ReportPath)
	if err != nil {
		logger.Error("failed to load report", "path", exportOptions.ReportPath, "error", err)
		return sharederrors.NewCommandError(exportOptions, err, 1)
	}
	finding, err := report.Find(exportOptions.Hash)
	if err != nil {
		logger.Error("finding not found", "hash", exportOptions.Hash, "error", err)
		return sharederrors.NewCommandError(exportOptions, err, 1)
	}

	req := findings.ExportRequest{
		Finding: *finding,
		Project: findings.Project{
			Root:       exportOptions.ProjectRoot,
			SourceDirs: append(append([]string{}, exportOptions.SourceDirs...), report.SourceDirs...),
		},
	}

	if exportOptions.Print {
		return printDraft(cmd.OutOrStdout(), req)
	}

	c := newCoordinator(cmd)
	res := c.Run(cmd.Context(), req)
	return reportResult(cmd.OutOrStdout(), res)
}

func newCoordinator(cmd *cobra.Command) *coordinator.Coordinator {
	var b exporter.Browser = browser.NewSystem(logger.Named("browser"), cmd.ErrOrStderr())
	if exportOptions.NoBrowser {
		b = &browser.Printer{Out: cmd.OutOrStdout()}
	}

	var confirmer prompt.Confirmer = prompt.NewTerminal(cmd.InOrStdin(), cmd.ErrOrStderr())
	if exportOptions.Yes {
		confirmer = prompt.Always(true)
	}

	factory := exporter.NewFactory(exporter.Deps{
		HTTP:      httpclient.InitializeRestyClient(logger.Named("http"), AppConfig),
		Browser:   b,
		Logger:    logger,
		Platforms: AppConfig.Platforms,
	})

	return &coordinator.Coordinator{
		Thresholds: preferences.NewStore(exportOptions.ProjectRoot),
		Confirmer:  confirmer,
		Remotes:    git.NewLocator(logger.Named("git")),
		Factory:    factory,
		Drafter:    formatter.New(logger.Named("formatter")),
		Logger:     logger,
		RemoteURL:  exportOptions.RemoteURL,
	}
}

func printDraft(out io.Writer, req findings.ExportRequest) error {
	sourceFile, err := req.Project.ResolveSource(req.Finding.Primary.SourcePath)
	if err != nil {
		logger.Warn("source file not found, printing without snippet", "error", err)
	}
	draft := formatter.New(logger.Named("formatter")).Draft(req.Finding, sourceFile)
	_, err = fmt.Fprintf(out, "%s\n\n%s\n", draft.Title, draft.Body)
	return err
}

// reportResult maps the coordinator result to the command's exit status:
// 0 exported or declined, 2 export failed, 3 nothing to export to.
func reportResult(out io.Writer, res coordinator.Result) error {
	switch {
	case res.Outcome.Kind == exporter.OutcomeSubmitted:
		fmt.Fprintf(out, "Issue submitted to %s\n", res.Descriptor.Host)
		return nil
	case res.Outcome.Kind == exporter.OutcomeOpened:
		fmt.Fprintf(out, "New issue form opened: %s\n", res.Outcome.URL)
		return nil
	case res.State == coordinator.Failed:
		return sharederrors.NewCommandError(exportOptions, fmt.Errorf("export failed: %w", res.Err), 2)
	case errors.Is(res.Err, sharederrors.ErrUserDeclined):
		fmt.Fprintln(out, "Export cancelled.")
		return nil
	default:
		return sharederrors.NewCommandError(exportOptions, fmt.Errorf("nothing exported: %w", res.Err), 3)
	}
}

func init() {
	ExportCmd.Flags().StringVarP(&exportOptions.ReportPath, "report", "r", "", "Path to a FindBugs/SpotBugs XML or SARIF report.")
	ExportCmd.Flags().StringVarP(&exportOptions.Hash, "bug", "b", "", "Instance hash (or a unique prefix) of the finding to export.")
	ExportCmd.Flags().StringVar(&exportOptions.ProjectRoot, "project", "", "Project root directory (default current directory).")
	ExportCmd.Flags().StringSliceVar(&exportOptions.SourceDirs, "source-dir", nil, "Source directory, relative to the project root, to resolve report paths against. Repeatable.")
	ExportCmd.Flags().StringVar(&exportOptions.RemoteURL, "remote", "", "Remote URL to export to instead of the repository's remotes.")
	ExportCmd.Flags().BoolVarP(&exportOptions.Yes, "yes", "y", false, "Export findings below the confidence threshold without asking.")
	ExportCmd.Flags().BoolVar(&exportOptions.Print, "print", false, "Print the issue title and body instead of exporting.")
	ExportCmd.Flags().BoolVar(&exportOptions.NoBrowser, "no-browser", false, "Print new-issue URLs instead of opening a browser.")
	ExportCmd.Flags().BoolP("help", "h", false, "Show help for the export command.")
}
