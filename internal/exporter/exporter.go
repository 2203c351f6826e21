package exporter

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/kmindi/fbissueexport/internal/formatter"
	"github.com/kmindi/fbissueexport/pkg/shared/config"
	"github.com/kmindi/fbissueexport/pkg/shared/vcsurl"
)

// OutcomeKind classifies the result of an export.
type OutcomeKind int

const (
	OutcomeFailed    OutcomeKind = iota // OutcomeFailed means the export did not happen
	OutcomeSubmitted                    // OutcomeSubmitted means the issue was created through the platform API
	OutcomeOpened                       // OutcomeOpened means a prefilled issue form was opened in the browser
	OutcomeSkipped                      // OutcomeSkipped means the export ended before any platform was contacted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeOpened:
		return "opened"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome is the result of one export attempt.
type Outcome struct {
	Kind OutcomeKind
	URL  string // set for OutcomeOpened
	Err  error  // reason for OutcomeFailed and OutcomeSkipped
}

func Submitted() Outcome           { return Outcome{Kind: OutcomeSubmitted} }
func Opened(url string) Outcome    { return Outcome{Kind: OutcomeOpened, URL: url} }
func Failed(err error) Outcome     { return Outcome{Kind: OutcomeFailed, Err: err} }
func Skipped(reason error) Outcome { return Outcome{Kind: OutcomeSkipped, Err: reason} }

// OK reports whether the issue was submitted or opened.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSubmitted || o.Kind == OutcomeOpened
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeOpened:
		return fmt.Sprintf("opened %s", o.URL)
	case OutcomeFailed, OutcomeSkipped:
		if o.Err != nil {
			return fmt.Sprintf("%s: %v", o.Kind, o.Err)
		}
	}
	return o.Kind.String()
}

// PlatformExporter files one issue draft on a hosting platform.
type PlatformExporter interface {
	// ExportBug exports draft to the repository described by d, or to its
	// upstream when the platform reports d as a fork.
	ExportBug(ctx context.Context, d vcsurl.RemoteDescriptor, draft formatter.IssueDraft) Outcome
	// AlreadyExported looks for a previous export of the finding with the given hash.
	AlreadyExported(ctx context.Context, d vcsurl.RemoteDescriptor, hash string) (string, bool)
}

// Browser opens a URL in the user's browser.
type Browser interface {
	OpenURL(url string) error
}

// Deps are the collaborators shared by all exporters.
type Deps struct {
	HTTP      *resty.Client
	Browser   Browser
	Logger    hclog.Logger
	Platforms config.Platforms
}

func (d Deps) logger() hclog.Logger {
	if d.Logger == nil {
		return hclog.NewNullLogger()
	}
	return d.Logger
}

func openInBrowser(b Browser, url string) error {
	if b == nil {
		return fmt.Errorf("no browser configured")
	}
	return b.OpenURL(url)
}

// noPriorExport is shared by all exporters: duplicate detection is not implemented.
type noPriorExport struct{}

func (noPriorExport) AlreadyExported(context.Context, vcsurl.RemoteDescriptor, string) (string, bool) {
	return "", false
}
