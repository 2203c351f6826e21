package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/reports/spotbugs.xml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "reports", "spotbugs.xml"), got)

	got, err = ExpandPath("/tmp/x")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", got)
}

func TestValidatePathAndDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "report.xml")
	require.NoError(t, os.WriteFile(file, []byte("<BugCollection/>"), 0o644))

	assert.NoError(t, ValidatePath(file))
	assert.Error(t, ValidatePath(dir))
	assert.Error(t, ValidatePath(filepath.Join(dir, "missing.xml")))

	assert.NoError(t, ValidateDir(dir))
	assert.Error(t, ValidateDir(file))
}

func TestAbsPath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := AbsPath("src/../src/Main.java")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "src", "Main.java"), got)
}
