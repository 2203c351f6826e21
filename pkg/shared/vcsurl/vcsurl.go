package vcsurl

import (
	"fmt"
	"regexp"
	"strings"

	govcsurl "github.com/gitsight/go-vcsurl"
)

type Platform int

const (
	UnknownPlatform Platform = iota // UnknownPlatform means that the host is not a supported issue tracker
	GitHub                          // GitHub means github.com
	Bitbucket                       // Bitbucket means bitbucket.org
	SourceForge                     // SourceForge means sourceforge.net
)

var platformHosts = map[string]Platform{
	"github.com":      GitHub,
	"bitbucket.org":   Bitbucket,
	"sourceforge.net": SourceForge,
}

// PlatformForHost maps a remote host to a platform. Comparison is case-insensitive.
func PlatformForHost(host string) Platform {
	if p, ok := platformHosts[strings.ToLower(host)]; ok {
		return p
	}
	return UnknownPlatform
}

func (p Platform) String() string {
	switch p {
	case GitHub:
		return "github"
	case Bitbucket:
		return "bitbucket"
	case SourceForge:
		return "sourceforge"
	default:
		return "unknown"
	}
}

// platformURLPattern accepts "git@host:owner/repo[.git][/]" and
// "https://host/owner/repo[.git][/]". The owner/repository convention is
// shared by every supported platform.
//
// Groups: 1 scheme, 2 host, 3 owner, 4 repository.
var platformURLPattern = regexp.MustCompile(`^(git@|https://)([\w.@]+)(?:/|:)([\w,\-]+)/([\w,\-]+)(?:\.git)?/?$`)

// RemoteDescriptor identifies a repository on a hosting platform.
type RemoteDescriptor struct {
	Host       string
	Owner      string
	Repository string
	Raw        string
}

// FullName returns "owner/repository".
func (d RemoteDescriptor) FullName() string {
	return d.Owner + "/" + d.Repository
}

// Platform returns the platform the descriptor's host belongs to.
func (d RemoteDescriptor) Platform() Platform {
	return PlatformForHost(d.Host)
}

// Match parses a git remote URL. Owner and repository keep their case.
// User info in HTTPS remotes ("https://user@bitbucket.org/...") is dropped from the host.
func Match(raw string) (*RemoteDescriptor, bool) {
	parts := platformURLPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if parts == nil {
		return nil, false
	}

	host := parts[2]
	if i := strings.LastIndex(host, "@"); i >= 0 {
		host = host[i+1:]
	}
	if host == "" {
		return nil, false
	}

	return &RemoteDescriptor{
		Host:       host,
		Owner:      parts[3],
		Repository: parts[4],
		Raw:        raw,
	}, true
}

// Remote is a named remote URL as read from the repository configuration.
type Remote struct {
	Name string
	URL  string
}

// MatchFirst returns the first remote, in the given order, whose URL matches.
func MatchFirst(remotes []Remote) (*RemoteDescriptor, *Remote) {
	for i := range remotes {
		if d, ok := Match(remotes[i].URL); ok {
			return d, &remotes[i]
		}
	}
	return nil, nil
}

// Normalize rewrites remote spellings the matcher does not accept
// ("ssh://", "git://", "http://") into the HTTPS form.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if _, ok := Match(raw); ok {
		return raw, nil
	}

	info, err := govcsurl.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("unsupported remote URL %q: %w", raw, err)
	}
	name := strings.TrimSuffix(info.Name, ".git")
	if info.Username == "" || name == "" {
		return "", fmt.Errorf("remote URL %q has no owner/repository", raw)
	}

	return fmt.Sprintf("https://%s/%s/%s.git", string(info.Host), info.Username, name), nil
}
