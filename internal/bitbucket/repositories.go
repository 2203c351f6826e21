package bitbucket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
)

// repositoriesService implements the RepositoriesService interface.
type repositoriesService struct {
	*service
}

// Get fetches a repository by owner and slug.
func (rs *repositoriesService) Get(ctx context.Context, owner, slug string) (*Repository, error) {
	endpoint := fmt.Sprintf("%s/2.0/repositories/%s/%s", rs.client.APIURL, url.PathEscape(owner), url.PathEscape(slug))
	rs.client.Logger.Debug("fetching repository", "url", endpoint)

	resp, err := rs.client.request(ctx).Get(endpoint)
	if err != nil {
		return nil, sharederrors.NewNetworkError(http.MethodGet, endpoint, err)
	}

	var repo Repository
	if err := unmarshalResponse(resp, &repo); err != nil {
		return nil, err
	}
	if repo.FullName == "" {
		return nil, sharederrors.NewParseError("Bitbucket repository", fmt.Errorf("response has no full_name"))
	}
	return &repo, nil
}
