package git

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/hashicorp/go-hclog"

	"github.com/kmindi/fbissueexport/pkg/shared/vcsurl"
)

// Repository is an opened local git repository.
type Repository struct {
	Root string
	repo *git.Repository
}

// Metadata describes the checked out state of a repository.
type Metadata struct {
	BranchName string
	CommitHash string
}

// FindRepositoryRoot walks from path up to the filesystem root and returns the
// first directory that opens as a git repository. A file path starts at its directory.
func FindRepositoryRoot(path string) (string, error) {
	if path == "" {
		return "", ErrPathNotSet
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		if _, err := git.PlainOpen(dir); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%q: %w", path, ErrNotRepository)
}

// Open locates and opens the repository containing path.
func Open(path string) (*Repository, error) {
	root, err := FindRepositoryRoot(path)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", root, err)
	}
	return &Repository{Root: filepath.Clean(root), repo: repo}, nil
}

// Remotes returns the configured remotes ordered by name. Only the first URL
// of each remote is used.
func (r *Repository) Remotes() ([]vcsurl.Remote, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read repository config: %w", err)
	}

	names := make([]string, 0, len(cfg.Remotes))
	for name := range cfg.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)

	remotes := make([]vcsurl.Remote, 0, len(names))
	for _, name := range names {
		rc := cfg.Remotes[name]
		if rc == nil || len(rc.URLs) == 0 {
			continue
		}
		remotes = append(remotes, vcsurl.Remote{Name: name, URL: rc.URLs[0]})
	}
	return remotes, nil
}

// Metadata reads the current branch and commit. An unborn HEAD yields empty values.
func (r *Repository) Metadata() Metadata {
	var md Metadata
	head, err := r.repo.Head()
	if err != nil {
		return md
	}
	if head.Name().IsBranch() {
		md.BranchName = head.Name().Short()
	}
	md.CommitHash = head.Hash().String()
	return md
}

// Locator resolves the remotes of the repository containing a file.
type Locator struct {
	Logger hclog.Logger
}

// NewLocator returns a Locator logging through logger.
func NewLocator(logger hclog.Logger) *Locator {
	return &Locator{Logger: logger}
}

// RemotesFor returns the repository root of path and its remotes in name order.
func (l *Locator) RemotesFor(path string) (string, []vcsurl.Remote, error) {
	repo, err := Open(path)
	if err != nil {
		return "", nil, err
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return repo.Root, nil, err
	}

	if l.Logger != nil {
		md := repo.Metadata()
		l.Logger.Debug("repository located", "root", repo.Root, "branch", md.BranchName, "commit", md.CommitHash, "remotes", len(remotes))
	}
	return repo.Root, remotes, nil
}
