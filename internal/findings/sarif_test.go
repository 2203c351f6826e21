package findings

import (
	"testing"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string { return &s }

func TestFormatMessage(t *testing.T) {
	testCases := []struct {
		name     string
		message  sarif.Message
		expected string
	}{
		{
			name:     "plain text",
			message:  sarif.Message{Text: stringPtr("NP: Possible null pointer dereference")},
			expected: "NP: Possible null pointer dereference",
		},
		{
			name: "arguments substituted",
			message: sarif.Message{
				Text:      stringPtr("Unread field {0} in {1}"),
				Arguments: []string{"size", "com.acme.widgets.Widget"},
			},
			expected: "Unread field size in com.acme.widgets.Widget",
		},
		{
			name: "location references reduced to text",
			message: sarif.Message{
				Markdown:  stringPtr("Value from {0} reaches {1}"),
				Arguments: []string{"[a parameter](0)", "[render](1),(2)"},
			},
			expected: "Value from a parameter reaches render",
		},
		{
			name:     "empty message",
			message:  sarif.Message{},
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, formatMessage(&tc.message))
		})
	}
}
