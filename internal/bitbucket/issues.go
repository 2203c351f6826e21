package bitbucket

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
)

// issuesService implements the IssuesService interface.
type issuesService struct {
	*service
}

// Create posts a new issue as a form with the fields title and content.
func (is *issuesService) Create(ctx context.Context, fullName, title, content string) (*Issue, error) {
	endpoint := fmt.Sprintf("%s/api/1.0/repositories/%s/issues", is.client.WebURL, fullName)
	is.client.Logger.Debug("creating issue", "url", endpoint, "title", title)

	resp, err := is.client.request(ctx).
		SetFormData(map[string]string{
			"title":   title,
			"content": content,
		}).
		Post(endpoint)
	if err != nil {
		return nil, sharederrors.NewNetworkError(http.MethodPost, endpoint, err)
	}

	var issue Issue
	if err := unmarshalResponse(resp, &issue); err != nil {
		var parseErr *sharederrors.ParseError
		if !errors.As(err, &parseErr) {
			return nil, err
		}
		// a 2xx answer counts as created even when the body is not the expected JSON
		is.client.Logger.Debug("issue created, response body not understood", "error", err)
	}
	return &issue, nil
}
