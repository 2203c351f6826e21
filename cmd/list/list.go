package list

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/kmindi/fbissueexport/internal/findings"
	"github.com/kmindi/fbissueexport/internal/formatter"
	"github.com/kmindi/fbissueexport/pkg/shared"
	"github.com/kmindi/fbissueexport/pkg/shared/config"
	"github.com/kmindi/fbissueexport/pkg/shared/errors"
	"github.com/kmindi/fbissueexport/pkg/shared/files"
)

// RunOptionsList holds the arguments of the list command.
type RunOptionsList struct {
	ReportPath  string
	MaxPriority int
	JSON        bool
}

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	logger      hclog.Logger
	listOptions RunOptionsList

	exampleListUsage = `  # List the findings of a SpotBugs XML report
  fbissue list --report target/spotbugsXml.xml

  # List only high and medium confidence findings as JSON
  fbissue list --report build/spotbugs.sarif --max-priority 2 --json`
)

// ListCmd represents the command for list command.
var ListCmd = &cobra.Command{
	Use:                   "list --report PATH [--max-priority N] [--json]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleListUsage,
	Short:                 "List the findings of a report",
	Long:                  "List the findings of a FindBugs/SpotBugs XML or SARIF report ordered by confidence and rank.",
	RunE:                  runListCommand,
}

// ListedFinding is one row of the list output.
type ListedFinding struct {
	Hash         string `json:"hash"`
	Priority     string `json:"priority"`
	RankCategory string `json:"rank_category"`
	Type         string `json:"type"`
	Location     string `json:"location"`
	Title        string `json:"title"`
}

// Init initializes the global configuration and logger.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runListCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if err := validateListArgs(&listOptions, args); err != nil {
		logger.Error("invalid list arguments", "error", err)
		return errors.NewCommandError(listOptions, fmt.Errorf("invalid list arguments: %w", err), 1)
	}

	report, err := findings.LoadReport(listOptions.ReportPath)
	if err != nil {
		logger.Error("failed to load report", "path", listOptions.ReportPath, "error", err)
		return errors.NewCommandError(listOptions, err, 1)
	}
	logger.Debug("report loaded", "format", report.Format, "findings", len(report.Findings))

	rows := buildRows(report, listOptions.MaxPriority)
	if listOptions.JSON {
		return shared.PrintResultAsJSON(cmd.OutOrStdout(), rows)
	}
	return printTable(cmd.OutOrStdout(), rows)
}

func buildRows(report *findings.Report, maxPriority int) []ListedFinding {
	rows := []ListedFinding{}
	for _, f := range report.Sorted() {
		if maxPriority > 0 && f.Priority > maxPriority {
			continue
		}
		rows = append(rows, ListedFinding{
			Hash:         f.InstanceHash,
			Priority:     f.PriorityString(),
			RankCategory: f.RankCategory(),
			Type:         f.Type,
			Location:     fmt.Sprintf("%s:%d", f.Primary.ClassName, f.Primary.StartLine),
			Title:        formatter.Title(f),
		})
	}
	return rows
}

func printTable(out io.Writer, rows []ListedFinding) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HASH\tCONFIDENCE\tRANK\tTYPE\tLOCATION\tTITLE")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Hash, r.Priority, r.RankCategory, r.Type, r.Location, r.Title)
	}
	return w.Flush()
}

// validateListArgs validates the arguments provided to the list command.
func validateListArgs(options *RunOptionsList, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the list command takes no positional arguments")
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

	if options.MaxPriority < 0 || options.MaxPriority > findings.PriorityIgnore {
		return fmt.Errorf("the 'max-priority' flag must be between 1 and %d", findings.PriorityIgnore)
	}
	return nil
}

func init() {
	ListCmd.Flags().StringVarP(&listOptions.ReportPath, "report", "r", "", "Path to a FindBugs/SpotBugs XML or SARIF report.")
	ListCmd.Flags().IntVar(&listOptions.MaxPriority, "max-priority", 0, "Only list findings with this priority or a higher confidence (1 high .. 5 ignore).")
	ListCmd.Flags().BoolVar(&listOptions.JSON, "json", false, "Print the findings as JSON.")
	ListCmd.Flags().BoolP("help", "h", false, "Show help for the list command.")
}
