package findings

import (
	"encoding/xml"
	"strings"

	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
)

type bugCollection struct {
	XMLName      xml.Name        `xml:"BugCollection"`
	Project      fbProject       `xml:"Project"`
	BugInstances []bugInstance   `xml:"BugInstance"`
	BugPatterns  []bugPatternXML `xml:"BugPattern"`
}

type fbProject struct {
	SrcDirs []string `xml:"SrcDir"`
}

type bugInstance struct {
	Type         string `xml:"type,attr"`
	Priority     int    `xml:"priority,attr"`
	Rank         int    `xml:"rank,attr"`
	Abbrev       string `xml:"abbrev,attr"`
	Category     string `xml:"category,attr"`
	InstanceHash string `xml:"instanceHash,attr"`

	ShortMessage string `xml:"ShortMessage"`
	LongMessage  string `xml:"LongMessage"`

	Class          []classAnnotation `xml:"Class"`
	Method         []namedAnnotation `xml:"Method"`
	Field          []namedAnnotation `xml:"Field"`
	LocalVariables []namedAnnotation `xml:"LocalVariable"`
	SourceLines    []sourceLine      `xml:"SourceLine"`
}

type classAnnotation struct {
	ClassName  string     `xml:"classname,attr"`
	Primary    bool       `xml:"primary,attr"`
	SourceLine sourceLine `xml:"SourceLine"`
}

type namedAnnotation struct {
	Name    string `xml:"name,attr"`
	Primary bool   `xml:"primary,attr"`
}

type sourceLine struct {
	ClassName  string `xml:"classname,attr"`
	Start      int    `xml:"start,attr"`
	End        int    `xml:"end,attr"`
	SourcePath string `xml:"sourcepath,attr"`
	Primary    bool   `xml:"primary,attr"`
}

type bugPatternXML struct {
	Type             string `xml:"type,attr"`
	ShortDescription string `xml:"ShortDescription"`
	Details          string `xml:"Details"`
}

func parseFindBugsXML(data []byte) (*Report, error) {
	var bc bugCollection
	if err := xml.Unmarshal(data, &bc); err != nil {
		return nil, sharederrors.NewParseError("FindBugs XML report", err)
	}

	patterns := make(map[string]bugPatternXML, len(bc.BugPatterns))
	for _, p := range bc.BugPatterns {
		patterns[p.Type] = p
	}

	report := &Report{Format: "findbugs", SourceDirs: bc.Project.SrcDirs}
	for _, bi := range bc.BugInstances {
		report.Findings = append(report.Findings, bi.toFinding(patterns[bi.Type]))
	}
	return report, nil
}

func (bi bugInstance) toFinding(pattern bugPatternXML) Finding {
	f := Finding{
		InstanceHash: bi.InstanceHash,
		Type:         bi.Type,
		Abbrev:       bi.Abbrev,
		Category:     bi.Category,
		Priority:     bi.Priority,
		Rank:         bi.Rank,
		Message:      strings.TrimSpace(bi.LongMessage),
		Details:      strings.TrimSpace(pattern.Details),
		Primary:      bi.primarySourceLine(),
	}

	if m := primaryNamed(bi.Method); m != nil {
		f.Method = m.Name
	}
	if fd := primaryNamed(bi.Field); fd != nil {
		f.Field = fd.Name
	}
	if len(bi.LocalVariables) > 0 {
		f.LocalVariable = bi.LocalVariables[0].Name
	}

	if f.Message == "" {
		f.Message = strings.TrimSpace(bi.ShortMessage)
	}
	if f.Message == "" {
		f.Message = strings.TrimSpace(pattern.ShortDescription)
	}
	f.AbridgedMessage = abridge(f.MessageWithoutPrefix(), f.Primary.ClassName)
	if f.AbridgedMessage == "" {
		f.AbridgedMessage = strings.TrimSpace(bi.ShortMessage)
	}
	return f
}

// primarySourceLine prefers the bug's own primary SourceLine, then the
// primary class's source range.
func (bi bugInstance) primarySourceLine() SourceLocation {
	var chosen *sourceLine
	for i := range bi.SourceLines {
		if bi.SourceLines[i].Primary {
			chosen = &bi.SourceLines[i]
			break
		}
	}
	if chosen == nil && len(bi.SourceLines) > 0 {
		chosen = &bi.SourceLines[0]
	}

	className := ""
	var classLine *sourceLine
	for i := range bi.Class {
		if bi.Class[i].Primary || i == 0 {
			className = bi.Class[i].ClassName
			classLine = &bi.Class[i].SourceLine
		}
		if bi.Class[i].Primary {
			break
		}
	}
	if chosen == nil {
		chosen = classLine
	}

	loc := SourceLocation{ClassName: className}
	if chosen != nil {
		loc.SourcePath = chosen.SourcePath
		loc.StartLine = chosen.Start
		loc.EndLine = chosen.End
		if chosen.ClassName != "" {
			loc.ClassName = chosen.ClassName
		}
	}
	if loc.EndLine < loc.StartLine {
		loc.EndLine = loc.StartLine
	}
	return loc
}

func primaryNamed(annotations []namedAnnotation) *namedAnnotation {
	for i := range annotations {
		if annotations[i].Primary {
			return &annotations[i]
		}
	}
	if len(annotations) > 0 {
		return &annotations[0]
	}
	return nil
}

// abridge drops the " in <class>..." location suffix of a long message.
func abridge(message, className string) string {
	if className == "" {
		return message
	}
	if i := strings.Index(message, " in "+className); i > 0 {
		return strings.TrimSpace(message[:i])
	}
	return message
}
