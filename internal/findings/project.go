package findings

import (
	"fmt"
	"os"
	"path/filepath"

	sharederrors "github.com/kmindi/fbissueexport/pkg/shared/errors"
)

// conventionalSourceDirs are tried after the configured source directories.
var conventionalSourceDirs = []string{
	"src/main/java",
	"src/test/java",
	"src",
	"",
}

// Project is the owning project of a finding: its root directory and the
// source directories relative paths in a report are resolved against.
type Project struct {
	Root       string
	SourceDirs []string
}

// ExportRequest bundles a finding with its owning project.
type ExportRequest struct {
	Finding Finding
	Project Project
}

// ResolveSource returns the absolute path of a report source path.
func (p Project) ResolveSource(sourcePath string) (string, error) {
	if sourcePath == "" {
		return "", fmt.Errorf("finding has no source path: %w", sharederrors.ErrResourceNotFound)
	}

	if filepath.IsAbs(sourcePath) {
		if isFile(sourcePath) {
			return filepath.Clean(sourcePath), nil
		}
		return "", fmt.Errorf("source file %q: %w", sourcePath, sharederrors.ErrResourceNotFound)
	}

	for _, dir := range p.candidateDirs() {
		candidate := filepath.Join(dir, filepath.FromSlash(sourcePath))
		if isFile(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("source file %q not found in project %q: %w", sourcePath, p.Root, sharederrors.ErrResourceNotFound)
}

func (p Project) candidateDirs() []string {
	var dirs []string
	seen := map[string]bool{}
	add := func(dir string) {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(p.Root, dir)
		}
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, dir := range p.SourceDirs {
		add(dir)
	}
	for _, dir := range conventionalSourceDirs {
		add(dir)
	}
	return dirs
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
