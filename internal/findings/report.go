package findings

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
)

// Report is the set of findings loaded from one analysis report.
type Report struct {
	Format     string
	Findings   []Finding
	SourceDirs []string
}

// LoadReport reads a FindBugs/SpotBugs XML or SARIF report.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %q: %w", path, err)
	}
	return ParseReport(data)
}

// ParseReport detects the report format from its first significant byte.
func ParseReport(data []byte) (*Report, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return nil, sharederrors.NewParseError("report", fmt.Errorf("empty input"))
	}

	switch trimmed[0] {
	case '<':
		return parseFindBugsXML(trimmed)
	case '{':
		return parseSARIF(trimmed)
	default:
		return nil, sharederrors.NewParseError("report", fmt.Errorf("unknown format, expected XML or SARIF JSON"))
	}
}

// Find returns the finding with the given instance hash. A unique prefix is accepted.
func (r *Report) Find(hash string) (*Finding, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return nil, fmt.Errorf("empty instance hash")
	}

	var matches []int
	for i := range r.Findings {
		h := r.Findings[i].InstanceHash
		if h == hash {
			return &r.Findings[i], nil
		}
		if strings.HasPrefix(h, hash) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("finding %q: %w", hash, sharederrors.ErrResourceNotFound)
	case 1:
		return &r.Findings[matches[0]], nil
	default:
		return nil, fmt.Errorf("instance hash prefix %q is ambiguous (%d findings)", hash, len(matches))
	}
}

// Sorted returns the findings ordered by priority, then rank, then location.
func (r *Report) Sorted() []Finding {
	out := make([]Finding, len(r.Findings))
	copy(out, r.Findings)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if a.Primary.SourcePath != b.Primary.SourcePath {
			return a.Primary.SourcePath < b.Primary.SourcePath
		}
		return a.Primary.StartLine < b.Primary.StartLine
	})
	return out
}
