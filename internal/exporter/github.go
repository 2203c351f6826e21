package exporter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/kmindi/fbissueexport/internal/formatter"
	"github.com/kmindi/fbissueexport/pkg/shared/config"
	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
	"github.com/kmindi/fbissueexport/pkg/shared/vcsurl"
)

// GitHubExporter resolves forks through the REST API and opens the new-issue
// form of the upstream repository in the browser.
type GitHubExporter struct {
	noPriorExport
	client  *github.Client
	webURL  string
	browser Browser
	logger  hclog.Logger
}

// NewGitHubExporter builds a go-github client on the shared HTTP client.
// A configured token is sent as an OAuth2 bearer token.
func NewGitHubExporter(deps Deps) (*GitHubExporter, error) {
	cfg := deps.Platforms.GitHub

	httpClient := http.DefaultClient
	if deps.HTTP != nil {
		httpClient = deps.HTTP.GetClient()
	}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	}

	client := github.NewClient(httpClient)
	apiURL := config.SetThen(cfg.APIURL, config.DefaultGitHubAPIURL)
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	baseURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}
	client.BaseURL = baseURL

	return &GitHubExporter{
		client:  client,
		webURL:  strings.TrimSuffix(config.SetThen(cfg.WebURL, config.DefaultGitHubWebURL), "/"),
		browser: deps.Browser,
		logger:  deps.logger().Named("github"),
	}, nil
}

// ExportBug implements PlatformExporter.
func (e *GitHubExporter) ExportBug(ctx context.Context, d vcsurl.RemoteDescriptor, draft formatter.IssueDraft) Outcome {
	fullName, err := e.upstreamFullName(ctx, d)
	if err != nil {
		e.logger.Error("failed to resolve repository", "repository", d.FullName(), "error", err)
		return Failed(err)
	}

	issueURL := newIssueURL(fmt.Sprintf("%s/%s/issues/new", e.webURL, fullName), "title", draft.Title, "body", draft.Body)
	if err := openInBrowser(e.browser, issueURL); err != nil {
		e.logger.Error("failed to open browser", "error", err)
		return Failed(fmt.Errorf("failed to open browser: %w", err))
	}

	e.logger.Info("opened new issue form", "repository", fullName)
	return Opened(issueURL)
}

// upstreamFullName returns the parent's full name for a fork, otherwise the repository's own.
func (e *GitHubExporter) upstreamFullName(ctx context.Context, d vcsurl.RemoteDescriptor) (string, error) {
	repo, resp, err := e.client.Repositories.Get(ctx, d.Owner, d.Repository)
	if err != nil {
		endpoint := fmt.Sprintf("%srepos/%s/%s", e.client.BaseURL, d.Owner, d.Repository)
		switch {
		case resp == nil:
			return "", sharederrors.NewNetworkError(http.MethodGet, endpoint, err)
		case resp.StatusCode >= 300:
			return "", &sharederrors.NetworkError{Method: http.MethodGet, URL: endpoint, StatusCode: resp.StatusCode, Err: err}
		default:
			return "", sharederrors.NewParseError("GitHub repository", err)
		}
	}

	if parent := repo.GetParent(); parent != nil && parent.GetFullName() != "" {
		e.logger.Debug("repository is a fork, reporting upstream", "fork", repo.GetFullName(), "upstream", parent.GetFullName())
		return parent.GetFullName(), nil
	}
	if repo.GetFullName() != "" {
		return repo.GetFullName(), nil
	}
	return d.FullName(), nil
}

// newIssueURL appends URL-encoded query parameters in the given order.
func newIssueURL(base string, keyValues ...string) string {
	var sb strings.Builder
	sb.WriteString(base)
	for i := 0; i+1 < len(keyValues); i += 2 {
		if i == 0 {
			sb.WriteString("?")
		} else {
			sb.WriteString("&")
		}
		sb.WriteString(url.QueryEscape(keyValues[i]))
		sb.WriteString("=")
		sb.WriteString(url.QueryEscape(keyValues[i+1]))
	}
	return sb.String()
}
