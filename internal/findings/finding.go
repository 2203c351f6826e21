package findings

import (
	"regexp"
	"strings"
)

// Priorities as reported by FindBugs/SpotBugs. A lower value means higher confidence.
const (
	PriorityHigh         = 1
	PriorityNormal       = 2
	PriorityLow          = 3
	PriorityExperimental = 4
	PriorityIgnore       = 5
)

// SourceLocation is the primary source range of a finding.
type SourceLocation struct {
	SourcePath string `json:"source_path"`
	ClassName  string `json:"class_name"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
}

// Finding is a single static-analysis warning.
type Finding struct {
	InstanceHash string `json:"instance_hash"`
	Type         string `json:"type"`
	Abbrev       string `json:"abbrev,omitempty"`
	Category     string `json:"category,omitempty"`
	Priority     int    `json:"priority"`
	Rank         int    `json:"rank"`

	Message         string `json:"message"`
	AbridgedMessage string `json:"abridged_message"`
	Details         string `json:"details,omitempty"`

	Primary       SourceLocation `json:"primary"`
	Method        string         `json:"method,omitempty"`
	Field         string         `json:"field,omitempty"`
	LocalVariable string         `json:"local_variable,omitempty"`
}

// bug-code prefixes look like "NP: " or "RCN: ".
var messagePrefix = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*:\s+`)

// MessageWithoutPrefix returns the message stripped of a leading bug-code prefix.
func (f Finding) MessageWithoutPrefix() string {
	return strings.TrimSpace(messagePrefix.ReplaceAllString(strings.TrimSpace(f.Message), ""))
}

// PriorityString names the confidence level.
func (f Finding) PriorityString() string {
	return PriorityName(f.Priority)
}

func PriorityName(priority int) string {
	switch priority {
	case PriorityHigh:
		return "High"
	case PriorityNormal:
		return "Medium"
	case PriorityLow:
		return "Low"
	case PriorityExperimental:
		return "Experimental"
	default:
		return "Ignore"
	}
}

// RankCategory buckets the bug rank (1 scariest .. 20).
func (f Finding) RankCategory() string {
	return RankCategoryName(f.Rank)
}

func RankCategoryName(rank int) string {
	switch {
	case rank >= 1 && rank <= 4:
		return "Scariest"
	case rank >= 5 && rank <= 9:
		return "Scary"
	case rank >= 10 && rank <= 14:
		return "Troubling"
	default:
		return "Of Concern"
	}
}
