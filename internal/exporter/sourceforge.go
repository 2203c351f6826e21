package exporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/kmindi/fbissueexport/internal/formatter"
	"github.com/kmindi/fbissueexport/pkg/shared/config"
	"github.com/kmindi/fbissueexport/pkg/shared/vcsurl"
)

// SourceForgeExporter opens the bug tracker's new-ticket form. SourceForge
// projects are addressed by the repository name alone; forks are not resolved.
type SourceForgeExporter struct {
	noPriorExport
	webURL  string
	browser Browser
	logger  hclog.Logger
}

// NewSourceForgeExporter returns a browser based exporter.
func NewSourceForgeExporter(deps Deps) *SourceForgeExporter {
	return &SourceForgeExporter{
		webURL:  strings.TrimSuffix(config.SetThen(deps.Platforms.SourceForge.WebURL, config.DefaultSourceForgeWebURL), "/"),
		browser: deps.Browser,
		logger:  deps.logger().Named("sourceforge"),
	}
}

// ExportBug implements PlatformExporter.
func (e *SourceForgeExporter) ExportBug(_ context.Context, d vcsurl.RemoteDescriptor, draft formatter.IssueDraft) Outcome {
	issueURL := newIssueURL(fmt.Sprintf("%s/p/%s/bugs/new/", e.webURL, d.Repository), "summary", draft.Title, "description", draft.Body)
	if err := openInBrowser(e.browser, issueURL); err != nil {
		e.logger.Error("failed to open browser", "error", err)
		return Failed(fmt.Errorf("failed to open browser: %w", err))
	}

	e.logger.Info("opened new ticket form", "project", d.Repository)
	return Opened(issueURL)
}
