package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/kmindi/fbissueexport/internal/exporter"
	"github.com/kmindi/fbissueexport/internal/findings"
	"github.com/kmindi/fbissueexport/internal/formatter"
	"github.com/kmindi/fbissueexport/internal/preferences"
	"github.com/kmindi/fbissueexport/internal/prompt"
	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
	"github.com/kmindi/fbissueexport/pkg/shared/vcsurl"
)

// State is a step of an export.
type State int

const (
	Idle State = iota
	ThresholdCheck
	UserConfirm
	LocateRepo
	MatchRemote
	Export
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ThresholdCheck:
		return "threshold-check"
	case UserConfirm:
		return "user-confirm"
	case LocateRepo:
		return "locate-repo"
	case MatchRemote:
		return "match-remote"
	case Export:
		return "export"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ThresholdSource supplies the per-project confidence threshold.
type ThresholdSource interface {
	ConfidenceThreshold() (int, error)
}

// RemoteSource lists the remotes of the repository containing a path.
type RemoteSource interface {
	RemotesFor(path string) (string, []vcsurl.Remote, error)
}

// ExporterFactory picks the exporter for a remote host.
type ExporterFactory interface {
	Create(host string, d vcsurl.RemoteDescriptor) (exporter.PlatformExporter, bool)
}

// Drafter renders the issue for a finding.
type Drafter interface {
	Draft(f findings.Finding, sourceFile string) formatter.IssueDraft
}

// Coordinator runs one export from threshold check to platform call.
type Coordinator struct {
	Thresholds ThresholdSource
	Confirmer  prompt.Confirmer
	Remotes    RemoteSource
	Factory    ExporterFactory
	Drafter    Drafter
	Logger     hclog.Logger

	// RemoteURL, when set, is matched instead of the repository's remotes.
	RemoteURL string
}

// Result is the terminal state of an export.
type Result struct {
	State      State
	Outcome    exporter.Outcome
	Descriptor *vcsurl.RemoteDescriptor
	Draft      formatter.IssueDraft
	Trace      []State
	Err        error
}

type run struct {
	c      *Coordinator
	logger hclog.Logger
	res    Result
}

func (r *run) enter(s State) {
	r.res.Trace = append(r.res.Trace, s)
	r.res.State = s
	r.logger.Trace("state", "state", s.String())
}

// done ends the export without contacting a platform.
func (r *run) done(reason error) Result {
	r.enter(Done)
	r.res.Outcome = exporter.Skipped(reason)
	r.res.Err = reason
	return r.res
}

func (r *run) failed(outcome exporter.Outcome) Result {
	r.enter(Failed)
	r.res.Outcome = outcome
	r.res.Err = outcome.Err
	return r.res
}

// Run exports req. Every condition that stops the export is reported in the
// Result; Run does not panic on platform or repository errors.
func (c *Coordinator) Run(ctx context.Context, req findings.ExportRequest) Result {
	logger := c.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	f := req.Finding
	r := &run{c: c, logger: logger.With("hash", f.InstanceHash)}
	r.enter(Idle)

	r.enter(ThresholdCheck)
	if c.needsConfirmation(r.logger, f) {
		r.enter(UserConfirm)
		question := fmt.Sprintf("This bug is only of %s confidence! Are you sure you want to report it?", f.PriorityString())
		confirmer := c.Confirmer
		if confirmer == nil {
			confirmer = prompt.Always(false)
		}
		ok, err := confirmer.Confirm(question)
		if err != nil {
			r.logger.Warn("confirmation failed, not exporting", "error", err)
			return r.done(fmt.Errorf("%w: %v", sharederrors.ErrUserDeclined, err))
		}
		if !ok {
			r.logger.Info("export cancelled, confidence below threshold", "priority", f.PriorityString())
			return r.done(sharederrors.ErrUserDeclined)
		}
	}

	r.enter(LocateRepo)
	sourceFile, err := req.Project.ResolveSource(f.Primary.SourcePath)
	if err != nil {
		r.logger.Debug("source file not resolved", "path", f.Primary.SourcePath, "error", err)
		sourceFile = ""
	}

	var remotes []vcsurl.Remote
	if c.RemoteURL != "" {
		remotes = []vcsurl.Remote{{Name: "override", URL: c.RemoteURL}}
	} else {
		start := sourceFile
		if start == "" {
			start = req.Project.Root
		}
		root, found, err := c.Remotes.RemotesFor(start)
		if err != nil {
			r.logger.Debug("no versioned directory found", "path", start, "error", err)
			return r.done(err)
		}
		r.logger.Debug("found versioned directory", "root", root)
		remotes = found
	}

	r.enter(MatchRemote)
	d, remote := vcsurl.MatchFirst(remotes)
	if d == nil {
		r.logger.Info("no remote matches a platform URL", "remotes", len(remotes))
		return r.done(sharederrors.ErrNoMatchingPlatform)
	}
	r.res.Descriptor = d
	r.logger.Debug("remote matched", "remote", remote.Name, "host", d.Host, "owner", d.Owner, "repository", d.Repository)

	r.enter(Export)
	exp, ok := c.Factory.Create(d.Host, *d)
	if !ok {
		r.logger.Info("no exporter for platform", "host", d.Host)
		return r.done(fmt.Errorf("%w: %s", sharederrors.ErrUnsupportedPlatform, d.Host))
	}

	if url, found := exp.AlreadyExported(ctx, *d, f.InstanceHash); found {
		r.logger.Info("finding already exported", "url", url)
		return r.done(fmt.Errorf("already exported: %s", url))
	}

	r.res.Draft = c.Drafter.Draft(f, sourceFile)
	outcome := exp.ExportBug(ctx, *d, r.res.Draft)
	if !outcome.OK() {
		if outcome.Err == nil {
			outcome.Err = errors.New("export failed")
		}
		r.logger.Error("export failed", "host", d.Host, "repository", d.FullName(), "error", outcome.Err)
		return r.failed(outcome)
	}

	r.logger.Info("export finished", "host", d.Host, "outcome", outcome.String())
	r.enter(Done)
	r.res.Outcome = outcome
	return r.res
}

// needsConfirmation reports whether priority is at or below the configured
// confidence. A lower priority value means higher confidence.
func (c *Coordinator) needsConfirmation(logger hclog.Logger, f findings.Finding) bool {
	threshold := preferences.DefaultConfidenceThreshold
	if c.Thresholds != nil {
		t, err := c.Thresholds.ConfidenceThreshold()
		if err != nil {
			logger.Warn("failed to read confidence threshold, using default", "default", threshold, "error", err)
		} else {
			threshold = t
		}
	}
	return f.Priority >= threshold
}
