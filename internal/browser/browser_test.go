package browser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterOpenURL(t *testing.T) {
	var out bytes.Buffer
	p := &Printer{Out: &out}

	require.NoError(t, p.OpenURL("https://github.com/acme/widgets/issues/new?title=x"))
	require.NoError(t, p.OpenURL("https://sourceforge.net/p/widgets/bugs/new/"))
	assert.Equal(t, "https://github.com/acme/widgets/issues/new?title=x\nhttps://sourceforge.net/p/widgets/bugs/new/\n", out.String())
}
