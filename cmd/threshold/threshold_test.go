package threshold

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateThresholdArgs(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name      string
		options   RunOptionsThreshold
		args      []string
		wantValue int
		wantErr   string
	}{
		{name: "Read only", options: RunOptionsThreshold{ProjectRoot: tmpDir}},
		{name: "Set value", options: RunOptionsThreshold{ProjectRoot: tmpDir}, args: []string{"3"}, wantValue: 3},
		{name: "Not a number", options: RunOptionsThreshold{ProjectRoot: tmpDir}, args: []string{"high"}, wantErr: "is not a number"},
		{name: "Out of range", options: RunOptionsThreshold{ProjectRoot: tmpDir}, args: []string{"0"}, wantErr: "out of range"},
		{name: "Too many arguments", options: RunOptionsThreshold{ProjectRoot: tmpDir}, args: []string{"1", "2"}, wantErr: "only one positional argument"},
		{name: "Missing project", options: RunOptionsThreshold{ProjectRoot: filepath.Join(tmpDir, "nope")}, wantErr: "invalid project directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := tt.options
			err := validateThresholdArgs(&options, tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, options.Value)
		})
	}
}

func TestRunThresholdCommand(t *testing.T) {
	logger = hclog.NewNullLogger()
	tmpDir := t.TempDir()

	run := func(args ...string) string {
		var out bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&out)
		thresholdOptions = RunOptionsThreshold{ProjectRoot: tmpDir}
		require.NoError(t, runThresholdCommand(cmd, args))
		return out.String()
	}

	assert.Equal(t, "2 (Medium)\n", run())
	assert.Equal(t, "4 (Experimental)\n", run("4"))
	assert.Equal(t, "4 (Experimental)\n", run())
}
