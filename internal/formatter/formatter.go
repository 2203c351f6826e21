package formatter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/kmindi/fbissueexport/internal/findings"
)

// SnippetContext is the number of lines shown around the finding's range.
const SnippetContext = 5

const attribution = "This bug was found by FindBugs and exported using [FBIssueExport](https://github.com/kmindi/FBIssueExport). \n(FindBugs Bug-ID: %s)"

// IssueDraft is the rendered issue.
type IssueDraft struct {
	Title string
	Body  string
}

// Formatter renders findings into issue drafts.
type Formatter struct {
	logger hclog.Logger
}

// New returns a Formatter. A nil logger discards output.
func New(logger hclog.Logger) *Formatter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Formatter{logger: logger}
}

// Draft renders title and body. The snippet block is left out when sourceFile
// is empty or cannot be read.
func (fm *Formatter) Draft(f findings.Finding, sourceFile string) IssueDraft {
	var snippet, lang string
	if sourceFile != "" {
		s, err := Snippet(sourceFile, f.Primary.StartLine-SnippetContext, f.Primary.EndLine+SnippetContext)
		if err != nil {
			fm.logger.Error("failed to read source snippet", "file", sourceFile, "error", err)
		} else {
			snippet = s
			lang = Language(sourceFile)
		}
	} else {
		fm.logger.Debug("no source file for finding, skipping snippet", "hash", f.InstanceHash)
	}

	return IssueDraft{
		Title: Title(f),
		Body:  Body(f, snippet, lang),
	}
}

// Title is the finding message without its bug-code prefix.
func Title(f findings.Finding) string {
	return f.MessageWithoutPrefix()
}

// Body renders the Markdown issue description. An empty snippet omits the code block.
func Body(f findings.Finding, snippet, lang string) string {
	var sb strings.Builder

	sb.WriteString("# " + f.AbridgedMessage + "\n")
	sb.WriteString("\n\n" + f.Details + "\n\n")

	fmt.Fprintf(&sb, "The problem occurs in `%s` on line **%d**", f.Primary.ClassName, f.Primary.StartLine)
	switch {
	case f.Method != "":
		fmt.Fprintf(&sb, " in method `%s`", f.Method)
	case f.Field != "":
		fmt.Fprintf(&sb, " in field `%s`", f.Field)
	case f.LocalVariable != "":
		fmt.Fprintf(&sb, " in local variable `%s`", f.LocalVariable)
	}
	sb.WriteString(":\n\n")

	if snippet != "" {
		sb.WriteString("```" + lang + "\n")
		sb.WriteString(snippet)
		if !strings.HasSuffix(snippet, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("```\n\n")
	}

	fmt.Fprintf(&sb, "We have **%s** confidence for this **%s** bug!", f.PriorityString(), f.RankCategory())
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, attribution, f.InstanceHash)

	return sb.String()
}

// Snippet returns lines [start, end] of path, 1-based and inclusive, each
// terminated by a newline. start is clamped to 1; end past the file is clamped
// to the last line.
func Snippet(path string, start, end int) (string, error) {
	if start < 1 {
		start = 1
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open source file: %w", err)
	}
	defer file.Close()

	var sb strings.Builder
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; scanner.Scan(); n++ {
		if n > end {
			break
		}
		if n >= start {
			sb.WriteString(scanner.Text())
			sb.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read source file: %w", err)
	}
	return sb.String(), nil
}

var extensionLanguages = map[string]string{
	".java":   "java",
	".kt":     "kotlin",
	".scala":  "scala",
	".groovy": "groovy",
	".jsp":    "jsp",
}

// Language returns the code fence language for a source file.
func Language(path string) string {
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "java"
}
