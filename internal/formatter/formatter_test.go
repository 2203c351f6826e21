package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmindi/fbissueexport/internal/findings"
)

func writeLines(t *testing.T, n int) string {
	t.Helper()
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	path := filepath.Join(t.TempDir(), "Widget.java")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func expectedLines(from, to int) string {
	var sb strings.Builder
	for i := from; i <= to; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	return sb.String()
}

func TestSnippetClampsRange(t *testing.T) {
	path := writeLines(t, 20)

	testCases := []struct {
		name       string
		start, end int
		expected   string
	}{
		{name: "negative start", start: -3, end: 10, expected: expectedLines(1, 10)},
		{name: "zero start", start: 0, end: 2, expected: expectedLines(1, 2)},
		{name: "inner range", start: 5, end: 7, expected: expectedLines(5, 7)},
		{name: "end past file", start: 18, end: 30, expected: expectedLines(18, 20)},
		{name: "start past file", start: 25, end: 30, expected: ""},
		{name: "inverted range", start: 8, end: 4, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Snippet(path, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSnippetMissingFile(t *testing.T) {
	_, err := Snippet(filepath.Join(t.TempDir(), "missing.java"), 1, 5)
	assert.Error(t, err)
}

func sampleFinding() findings.Finding {
	return findings.Finding{
		InstanceHash:    "7d3b1c2f9a0e4b8d",
		Type:            "NP_NULL_ON_SOME_PATH",
		Priority:        findings.PriorityNormal,
		Rank:            6,
		Message:         "NP: Possible null pointer dereference of name in com.acme.widgets.Widget.render()",
		AbridgedMessage: "Possible null pointer dereference of name",
		Details:         "<p>A null value will be dereferenced.</p>",
		Primary: findings.SourceLocation{
			SourcePath: "com/acme/widgets/Widget.java",
			ClassName:  "com.acme.widgets.Widget",
			StartLine:  14,
			EndLine:    14,
		},
		Method: "render",
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Possible null pointer dereference of name in com.acme.widgets.Widget.render()", Title(sampleFinding()))
}

func TestBody(t *testing.T) {
	f := sampleFinding()
	body := Body(f, "int x = name.length();\n", "java")

	expected := "# Possible null pointer dereference of name\n" +
		"\n\n<p>A null value will be dereferenced.</p>\n\n" +
		"The problem occurs in `com.acme.widgets.Widget` on line **14** in method `render`:\n\n" +
		"```java\nint x = name.length();\n```\n\n" +
		"We have **Medium** confidence for this **Scary** bug!" +
		"\n\nThis bug was found by FindBugs and exported using [FBIssueExport](https://github.com/kmindi/FBIssueExport). \n" +
		"(FindBugs Bug-ID: 7d3b1c2f9a0e4b8d)"
	assert.Equal(t, expected, body)
}

func TestBodyMemberPrecedence(t *testing.T) {
	testCases := []struct {
		name     string
		method   string
		field    string
		local    string
		expected string
	}{
		{name: "method wins", method: "render", field: "size", local: "name", expected: "on line **14** in method `render`:"},
		{name: "field over local", field: "size", local: "name", expected: "on line **14** in field `size`:"},
		{name: "local variable", local: "name", expected: "on line **14** in local variable `name`:"},
		{name: "none", expected: "on line **14**:"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := sampleFinding()
			f.Method, f.Field, f.LocalVariable = tc.method, tc.field, tc.local
			assert.Contains(t, Body(f, "", ""), tc.expected)
		})
	}
}

func TestBodyWithoutSnippet(t *testing.T) {
	body := Body(sampleFinding(), "", "java")
	assert.NotContains(t, body, "```")
	assert.Contains(t, body, "`render`:\n\nWe have **Medium** confidence")
}

func TestDraftReadsContextAroundFinding(t *testing.T) {
	path := writeLines(t, 30)
	f := sampleFinding()

	draft := New(hclog.NewNullLogger()).Draft(f, path)
	assert.Equal(t, Title(f), draft.Title)
	assert.Contains(t, draft.Body, "```java\n"+expectedLines(9, 19)+"```\n\n")
}

func TestDraftFailsSoft(t *testing.T) {
	f := sampleFinding()

	draft := New(nil).Draft(f, filepath.Join(t.TempDir(), "gone.java"))
	assert.Equal(t, Title(f), draft.Title)
	assert.NotContains(t, draft.Body, "```")
	assert.Contains(t, draft.Body, "(FindBugs Bug-ID: 7d3b1c2f9a0e4b8d)")

	draft = New(nil).Draft(f, "")
	assert.NotContains(t, draft.Body, "```")
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "java", Language("Widget.java"))
	assert.Equal(t, "kotlin", Language("src/Widget.KT"))
	assert.Equal(t, "java", Language("README"))
}
