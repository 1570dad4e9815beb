// Package settings loads sleuth configuration from .sleuth/settings.yaml.
//
// Every field is optional. A missing file yields a nil *Settings, and all
// accessors are safe on a nil receiver, returning the caller's fallback.
//
//	threshold: 3
//	leaf_stop: true
//	log_level: debug
//	encoding: latin1
//	case_file_dir: reports
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings holds sleuth configuration.
type Settings struct {
	// Threshold overrides the scenario's evidence threshold when positive.
	Threshold int `yaml:"threshold"`
	// LeafStop, when set, ends expeditions at rooms with no doors.
	LeafStop *bool `yaml:"leaf_stop"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
	// Encoding is the default scenario file encoding.
	Encoding string `yaml:"encoding"`
	// CaseFileDir, when set, receives a markdown case file after each game.
	CaseFileDir string `yaml:"case_file_dir"`
}

// Path returns the settings file location under root.
func Path(root string) string {
	return filepath.Join(root, ".sleuth", "settings.yaml")
}

// Load reads .sleuth/settings.yaml relative to root.
// Returns nil (not an error) if the file does not exist.
func Load(root string) (*Settings, error) {
	path := Path(root)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	if s.Threshold < 0 {
		return nil, fmt.Errorf("%s: threshold %d is negative", path, s.Threshold)
	}
	if s.LogLevel != "" {
		if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return &s, nil
}

// ThresholdOr returns the configured threshold, or fallback when unset.
func (s *Settings) ThresholdOr(fallback int) int {
	if s == nil || s.Threshold == 0 {
		return fallback
	}
	return s.Threshold
}

// LeafStopOr returns the configured leaf-stop choice, or fallback when unset.
func (s *Settings) LeafStopOr(fallback bool) bool {
	if s == nil || s.LeafStop == nil {
		return fallback
	}
	return *s.LeafStop
}

// LogLevelOr returns the configured log level, or fallback when unset.
func (s *Settings) LogLevelOr(fallback logrus.Level) logrus.Level {
	if s == nil || s.LogLevel == "" {
		return fallback
	}
	lvl, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return fallback
	}
	return lvl
}

// EncodingOr returns the configured encoding, or fallback when unset.
func (s *Settings) EncodingOr(fallback string) string {
	if s == nil || s.Encoding == "" {
		return fallback
	}
	return s.Encoding
}

// CaseFileDirOr returns the configured case file directory, or fallback.
func (s *Settings) CaseFileDirOr(fallback string) string {
	if s == nil || s.CaseFileDir == "" {
		return fallback
	}
	return s.CaseFileDir
}
