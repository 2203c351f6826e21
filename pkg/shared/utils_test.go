package shared

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("report", "", "")
	flags.Bool("yes", false, "")

	require.NoError(t, flags.Parse([]string{}))
	assert.False(t, HasFlags(flags))

	require.NoError(t, flags.Parse([]string{"--yes"}))
	assert.True(t, HasFlags(flags))
}

func TestPrintResultAsJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintResultAsJSON(&out, map[string]int{"priority": 2}))
	assert.Equal(t, "{\n    \"priority\": 2\n}\n", out.String())

	assert.Error(t, PrintResultAsJSON(&out, func() {}))
}
