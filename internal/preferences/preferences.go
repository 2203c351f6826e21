package preferences

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"

	"github.com/kmindi/fbissueexport/internal/findings"
)

// FileName is the per-project preference file, stored in the project root.
const FileName = ".fbissueexport.yml"

// DefaultConfidenceThreshold prompts for every finding below high confidence.
const DefaultConfidenceThreshold = findings.PriorityNormal

// File is the on-disk layout of the preference file.
type File struct {
	Threshold Threshold `yaml:"threshold"`
}

type Threshold struct {
	Confidence int `yaml:"confidence"`
}

// Store reads and writes the preferences of one project.
type Store struct {
	path string
}

// NewStore returns the store for the project rooted at projectRoot.
func NewStore(projectRoot string) *Store {
	return &Store{path: filepath.Join(projectRoot, FileName)}
}

// Path returns the preference file location.
func (s *Store) Path() string {
	return s.path
}

// ConfidenceThreshold returns the stored threshold. When none is stored the
// default is written back and returned.
func (s *Store) ConfidenceThreshold() (int, error) {
	prefs, err := s.load()
	if err != nil {
		return DefaultConfidenceThreshold, err
	}
	if prefs.Threshold.Confidence != 0 {
		if err := ValidateThreshold(prefs.Threshold.Confidence); err != nil {
			return DefaultConfidenceThreshold, fmt.Errorf("%s: %w", s.path, err)
		}
		return prefs.Threshold.Confidence, nil
	}

	if err := s.SetConfidenceThreshold(DefaultConfidenceThreshold); err != nil {
		return DefaultConfidenceThreshold, err
	}
	return DefaultConfidenceThreshold, nil
}

// SetConfidenceThreshold stores value.
func (s *Store) SetConfidenceThreshold(value int) error {
	if err := ValidateThreshold(value); err != nil {
		return err
	}

	prefs, err := s.load()
	if err != nil {
		return err
	}
	prefs.Threshold.Confidence = value

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// ValidateThreshold accepts the priority range of a finding.
func ValidateThreshold(value int) error {
	if value < findings.PriorityHigh || value > findings.PriorityIgnore {
		return fmt.Errorf("confidence threshold %d out of range [%d, %d]", value, findings.PriorityHigh, findings.PriorityIgnore)
	}
	return nil
}

func (s *Store) load() (*File, error) {
	prefs := &File{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences %s: %w", s.path, err)
	}
	return prefs, nil
}
