package browser

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	pkgbrowser "github.com/pkg/browser"
)

// System opens URLs with the operating system's default browser.
type System struct {
	logger hclog.Logger
}

// NewSystem returns a System browser. Output of the launched command goes to out.
func NewSystem(logger hclog.Logger, out io.Writer) *System {
	if out != nil {
		pkgbrowser.Stdout = out
		pkgbrowser.Stderr = out
	}
	return &System{logger: logger}
}

// OpenURL launches the browser.
func (s *System) OpenURL(url string) error {
	s.logger.Debug("opening browser", "url", url)
	if err := pkgbrowser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	return nil
}

// Printer writes URLs to a writer instead of opening them. Used on headless machines.
type Printer struct {
	Out io.Writer
}

// OpenURL prints url on its own line.
func (p *Printer) OpenURL(url string) error {
	_, err := fmt.Fprintln(p.Out, url)
	return err
}
