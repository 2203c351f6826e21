package exporter

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/kmindi/fbissueexport/internal/bitbucket"
	"github.com/kmindi/fbissueexport/internal/formatter"
	"github.com/kmindi/fbissueexport/pkg/shared/config"
	"github.com/kmindi/fbissueexport/pkg/shared/vcsurl"
)

// BitbucketExporter resolves forks through the 2.0 API and submits the issue directly.
type BitbucketExporter struct {
	noPriorExport
	client *bitbucket.Client
	logger hclog.Logger
}

// NewBitbucketExporter returns an exporter using the shared resty client.
func NewBitbucketExporter(deps Deps) *BitbucketExporter {
	cfg := deps.Platforms.Bitbucket
	logger := deps.logger().Named("bitbucket")
	httpClient := deps.HTTP
	if httpClient == nil {
		httpClient = resty.New()
	}
	client := bitbucket.New(
		httpClient,
		logger,
		config.SetThen(cfg.APIURL, config.DefaultBitbucketAPIURL),
		config.SetThen(cfg.WebURL, config.DefaultBitbucketWebURL),
		bitbucket.AuthInfo{Username: cfg.Username, Token: cfg.Token},
	)
	return &BitbucketExporter{client: client, logger: logger}
}

// ExportBug implements PlatformExporter.
func (e *BitbucketExporter) ExportBug(ctx context.Context, d vcsurl.RemoteDescriptor, draft formatter.IssueDraft) Outcome {
	repo, err := e.client.Repositories.Get(ctx, d.Owner, d.Repository)
	if err != nil {
		e.logger.Error("failed to resolve repository", "repository", d.FullName(), "error", err)
		return Failed(err)
	}
	fullName := repo.UpstreamFullName()
	if fullName != repo.FullName {
		e.logger.Debug("repository is a fork, reporting upstream", "fork", repo.FullName, "upstream", fullName)
	}

	issue, err := e.client.Issues.Create(ctx, fullName, draft.Title, draft.Body)
	if err != nil {
		e.logger.Error("failed to create issue", "repository", fullName, "error", err)
		return Failed(fmt.Errorf("failed to create issue on %s: %w", fullName, err))
	}

	e.logger.Info("issue submitted", "repository", fullName, "id", issue.LocalID)
	return Submitted()
}
