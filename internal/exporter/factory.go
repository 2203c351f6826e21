package exporter

import (
	"github.com/kmindi/fbissueexport/pkg/shared/vcsurl"
)

// Factory creates the exporter matching a remote host.
type Factory struct {
	deps Deps
}

// NewFactory returns a factory whose exporters share deps.
func NewFactory(deps Deps) *Factory {
	return &Factory{deps: deps}
}

// Create returns the exporter for host, compared case-insensitively.
// Unknown hosts yield false.
func (f *Factory) Create(host string, d vcsurl.RemoteDescriptor) (PlatformExporter, bool) {
	logger := f.deps.logger()
	switch vcsurl.PlatformForHost(host) {
	case vcsurl.GitHub:
		e, err := NewGitHubExporter(f.deps)
		if err != nil {
			logger.Error("failed to create GitHub exporter", "repository", d.FullName(), "error", err)
			return nil, false
		}
		return e, true
	case vcsurl.Bitbucket:
		return NewBitbucketExporter(f.deps), true
	case vcsurl.SourceForge:
		return NewSourceForgeExporter(f.deps), true
	default:
		logger.Debug("no exporter for host", "host", host, "repository", d.FullName())
		return nil, false
	}
}
