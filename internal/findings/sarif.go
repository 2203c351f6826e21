package findings

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
)

func parseSARIF(data []byte) (*Report, error) {
	report, err := sarif.FromBytes(data)
	if err != nil {
		return nil, sharederrors.NewParseError("SARIF report", err)
	}
	if len(report.Runs) == 0 {
		return nil, sharederrors.NewParseError("SARIF report", fmt.Errorf("report has no runs"))
	}

	out := &Report{Format: "sarif"}
	for _, run := range report.Runs {
		rulesByID := map[string]*sarif.ReportingDescriptor{}
		var rules []*sarif.ReportingDescriptor
		if run.Tool.Driver != nil {
			rules = run.Tool.Driver.Rules
			for _, r := range rules {
				if r != nil && strings.TrimSpace(r.ID) != "" {
					rulesByID[r.ID] = r
				}
			}
		}

		for _, res := range run.Results {
			if res == nil {
				continue
			}
			var rule *sarif.ReportingDescriptor
			if res.RuleID != nil {
				rule = rulesByID[*res.RuleID]
			}
			if rule == nil && res.RuleIndex != nil && int(*res.RuleIndex) < len(rules) {
				rule = rules[*res.RuleIndex]
			}
			out.Findings = append(out.Findings, resultToFinding(res, rule))
		}
	}
	return out, nil
}

func resultToFinding(res *sarif.Result, rule *sarif.ReportingDescriptor) Finding {
	f := Finding{
		Priority: priorityFromLevel(res.Level),
		Rank:     intProperty(res.Properties, "rank"),
	}
	if res.RuleID != nil {
		f.Type = *res.RuleID
	} else if rule != nil {
		f.Type = rule.ID
	}
	if p := intProperty(res.Properties, "priority"); p > 0 {
		f.Priority = p
	}

	f.Message = strings.TrimSpace(formatMessage(&res.Message))

	if rule != nil {
		if rule.ShortDescription != nil && rule.ShortDescription.Text != nil {
			f.AbridgedMessage = strings.TrimSpace(*rule.ShortDescription.Text)
		}
		f.Details = ruleDetails(rule)
		if f.Rank == 0 {
			f.Rank = intProperty(rule.Properties, "rank")
		}
	}
	if f.Message == "" {
		f.Message = f.AbridgedMessage
	}
	if f.AbridgedMessage == "" {
		f.AbridgedMessage = f.MessageWithoutPrefix()
	}

	if len(res.Locations) > 0 && res.Locations[0] != nil {
		loc := res.Locations[0]
		f.Primary = physicalLocation(loc.PhysicalLocation)
		for _, ll := range loc.LogicalLocations {
			applyLogicalLocation(&f, ll)
		}
	}
	if f.Primary.ClassName == "" {
		f.Primary.ClassName = classNameFromPath(f.Primary.SourcePath)
	}

	f.InstanceHash = fingerprint(res, f)
	return f
}

// argumentReference matches message arguments of the form "[text](1)" or
// "[text](1),(2)"; only the text is kept.
var argumentReference = regexp.MustCompile(`^\[([^\]]+)\]\(.+\)$`)

// formatMessage substitutes "{N}" placeholders with the message arguments.
// Text is preferred over markdown since the title is plain text.
func formatMessage(m *sarif.Message) string {
	template := ""
	if m.Text != nil {
		template = *m.Text
	} else if m.Markdown != nil {
		template = *m.Markdown
	}
	for i, arg := range m.Arguments {
		if parts := argumentReference.FindStringSubmatch(arg); parts != nil {
			arg = parts[1]
		}
		template = strings.ReplaceAll(template, fmt.Sprintf("{%d}", i), arg)
	}
	return template
}

func ruleDetails(rule *sarif.ReportingDescriptor) string {
	if rule.Help != nil {
		if rule.Help.Markdown != nil && strings.TrimSpace(*rule.Help.Markdown) != "" {
			return strings.TrimSpace(*rule.Help.Markdown)
		}
		if rule.Help.Text != nil && strings.TrimSpace(*rule.Help.Text) != "" {
			return strings.TrimSpace(*rule.Help.Text)
		}
	}
	if rule.FullDescription != nil && rule.FullDescription.Text != nil {
		return strings.TrimSpace(*rule.FullDescription.Text)
	}
	return ""
}

func physicalLocation(pl *sarif.PhysicalLocation) SourceLocation {
	var loc SourceLocation
	if pl == nil {
		return loc
	}
	if pl.ArtifactLocation != nil && pl.ArtifactLocation.URI != nil {
		loc.SourcePath = strings.TrimPrefix(*pl.ArtifactLocation.URI, "file://")
	}
	if pl.Region != nil {
		if pl.Region.StartLine != nil {
			loc.StartLine = *pl.Region.StartLine
		}
		if pl.Region.EndLine != nil {
			loc.EndLine = *pl.Region.EndLine
		}
	}
	if loc.EndLine < loc.StartLine {
		loc.EndLine = loc.StartLine
	}
	return loc
}

func applyLogicalLocation(f *Finding, ll *sarif.LogicalLocation) {
	if ll == nil || ll.Kind == nil {
		return
	}
	name := ""
	if ll.Name != nil {
		name = *ll.Name
	}
	switch strings.ToLower(*ll.Kind) {
	case "type", "class":
		if ll.FullyQualifiedName != nil {
			f.Primary.ClassName = *ll.FullyQualifiedName
		} else if name != "" {
			f.Primary.ClassName = name
		}
	case "function", "method", "member":
		if f.Method == "" {
			f.Method = name
		}
	case "field", "property":
		if f.Field == "" {
			f.Field = name
		}
	case "variable", "local":
		if f.LocalVariable == "" {
			f.LocalVariable = name
		}
	}
}

// priorityFromLevel maps SARIF levels onto FindBugs priorities.
func priorityFromLevel(level *string) int {
	if level == nil {
		return PriorityNormal
	}
	switch strings.ToLower(*level) {
	case "error":
		return PriorityHigh
	case "warning":
		return PriorityNormal
	case "note":
		return PriorityLow
	default:
		return PriorityExperimental
	}
}

func intProperty(props map[string]interface{}, key string) int {
	if props == nil {
		return 0
	}
	switch v := props[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// fingerprint prefers the report's own fingerprints so the hash is stable
// across runs of the analyzer.
func fingerprint(res *sarif.Result, f Finding) string {
	for _, prints := range []map[string]interface{}{res.Fingerprints, res.PartialFingerprints} {
		if len(prints) == 0 {
			continue
		}
		keys := make([]string, 0, len(prints))
		for k := range prints {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if v := strings.TrimSpace(fmt.Sprint(prints[keys[0]])); v != "" {
			return v
		}
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d|%s", f.Type, f.Primary.SourcePath, f.Primary.StartLine, f.Primary.EndLine, f.Message)))
	return hex.EncodeToString(sum[:16])
}

func classNameFromPath(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}
	p := strings.TrimSuffix(sourcePath, path.Ext(sourcePath))
	for _, prefix := range []string{"src/main/java/", "src/test/java/", "src/"} {
		if strings.HasPrefix(p, prefix) {
			p = strings.TrimPrefix(p, prefix)
			break
		}
	}
	return strings.ReplaceAll(p, "/", ".")
}
