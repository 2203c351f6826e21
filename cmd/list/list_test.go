package list

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmindi/fbissueexport/internal/findings"
)

func sampleReport() *findings.Report {
	return &findings.Report{Findings: []findings.Finding{
		{
			InstanceHash: "0a1b", Type: "URF_UNREAD_FIELD", Priority: 2, Rank: 18,
			Message: "UrF: Unread field", Primary: findings.SourceLocation{ClassName: "com.acme.Gadget", StartLine: 22},
		},
		{
			InstanceHash: "7d3b", Type: "NP_NULL_ON_SOME_PATH", Priority: 1, Rank: 6,
			Message: "NP: Possible null pointer dereference", Primary: findings.SourceLocation{ClassName: "com.acme.Widget", StartLine: 14},
		},
		{
			InstanceHash: "0a1c", Type: "DM_DEFAULT_ENCODING", Priority: 3, Rank: 19,
			Message: "Dm: Reliance on default encoding", Primary: findings.SourceLocation{ClassName: "com.acme.Gadget", StartLine: 3},
		},
	}}
}

func TestBuildRows(t *testing.T) {
	rows := buildRows(sampleReport(), 0)
	require.Len(t, rows, 3)
	assert.Equal(t, ListedFinding{
		Hash:         "7d3b",
		Priority:     "High",
		RankCategory: "Scary",
		Type:         "NP_NULL_ON_SOME_PATH",
		Location:     "com.acme.Widget:14",
		Title:        "Possible null pointer dereference",
	}, rows[0])

	rows = buildRows(sampleReport(), 2)
	require.Len(t, rows, 2)
	assert.Equal(t, "0a1b", rows[1].Hash)
}

func TestPrintTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printTable(&out, buildRows(sampleReport(), 1)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "HASH"))
	assert.Contains(t, lines[1], "com.acme.Widget:14")
}

func TestValidateListArgs(t *testing.T) {
	tmpDir := t.TempDir()
	report := filepath.Join(tmpDir, "report.sarif")
	require.NoError(t, os.WriteFile(report, []byte("{}"), 0o644))

	tests := []struct {
		name    string
		options RunOptionsList
		args    []string
		wantErr string
	}{
		{name: "Valid report", options: RunOptionsList{ReportPath: report}},
		{name: "Valid priority filter", options: RunOptionsList{ReportPath: report, MaxPriority: 3}},
		{name: "Missing report", options: RunOptionsList{}, wantErr: "the 'report' flag must be specified"},
		{name: "Positional argument", options: RunOptionsList{ReportPath: report}, args: []string{"x"}, wantErr: "takes no positional arguments"},
		{name: "Report missing on disk", options: RunOptionsList{ReportPath: filepath.Join(tmpDir, "nope.xml")}, wantErr: "invalid report path"},
		{name: "Priority out of range", options: RunOptionsList{ReportPath: report, MaxPriority: 6}, wantErr: "between 1 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := tt.options
			err := validateListArgs(&options, tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
