package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
)

// service wraps a client to access different services.
type service struct {
	client *Client
}

// Client talks to Bitbucket Cloud. Repository lookups use the 2.0 REST API,
// issue creation uses the 1.0 issue tracker endpoint on the web host.
type Client struct {
	HTTP         *resty.Client
	APIURL       string
	WebURL       string
	Logger       hclog.Logger
	auth         AuthInfo
	Repositories RepositoriesService
	Issues       IssuesService
}

// RepositoriesService defines repository lookups.
type RepositoriesService interface {
	Get(ctx context.Context, owner, slug string) (*Repository, error)
}

// IssuesService defines issue tracker operations.
type IssuesService interface {
	Create(ctx context.Context, fullName, title, content string) (*Issue, error)
}

// AuthInfo holds optional basic credentials (username and app password).
type AuthInfo struct {
	Username string
	Token    string
}

// IsSet reports whether both parts of the credentials are present.
func (a AuthInfo) IsSet() bool {
	return a.Username != "" && a.Token != ""
}

// New initializes a client on a shared resty client. Credentials are applied
// per request so the resty client can be shared with other platforms.
func New(httpClient *resty.Client, logger hclog.Logger, apiURL, webURL string, auth AuthInfo) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	client := &Client{
		HTTP:   httpClient,
		APIURL: strings.TrimSuffix(apiURL, "/"),
		WebURL: strings.TrimSuffix(webURL, "/"),
		Logger: logger,
		auth:   auth,
	}
	client.Repositories = &repositoriesService{service: &service{client}}
	client.Issues = &issuesService{service: &service{client}}
	return client
}

// request returns a request builder carrying ctx, the accept header and credentials.
func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.HTTP.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if c.auth.IsSet() {
		req.SetBasicAuth(c.auth.Username, c.auth.Token)
	}
	return req
}

// unmarshalResponse parses a JSON body into out after checking the status code.
func unmarshalResponse[T any](resp *resty.Response, out *T) error {
	method, url := http.MethodGet, ""
	if resp.Request != nil {
		method, url = resp.Request.Method, resp.Request.URL
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		var apiErr ErrorResponse
		if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error.Message != "" {
			return &sharederrors.NetworkError{
				Method:     method,
				URL:        url,
				StatusCode: resp.StatusCode(),
				Err:        fmt.Errorf("%s", apiErr.Error.Message),
			}
		}
		return sharederrors.NewStatusError(method, url, resp.StatusCode())
	}

	if len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return sharederrors.NewParseError("Bitbucket response", err)
	}
	return nil
}
