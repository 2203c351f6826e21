package bitbucket

// Repository is the subset of a Bitbucket Cloud repository used for fork resolution.
type Repository struct {
	FullName string      `json:"full_name"`
	Name     string      `json:"name"`
	Slug     string      `json:"slug"`
	Parent   *Repository `json:"parent,omitempty"`
	Links    Links       `json:"links"`
}

// UpstreamFullName returns the parent's full name for a fork, otherwise the
// repository's own full name.
func (r *Repository) UpstreamFullName() string {
	if r.Parent != nil && r.Parent.FullName != "" {
		return r.Parent.FullName
	}
	return r.FullName
}

// Links stores URLs for accessing related resources.
type Links struct {
	HTML *Link `json:"html,omitempty"`
}

// Link represents a single hyperlink.
type Link struct {
	Href string `json:"href"`
}

// Issue is the issue tracker's answer to a create request.
type Issue struct {
	LocalID     int    `json:"local_id"`
	Title       string `json:"title"`
	ResourceURI string `json:"resource_uri"`
}

// ErrorResponse is the error envelope of the 2.0 API.
type ErrorResponse struct {
	Type  string `json:"type"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
