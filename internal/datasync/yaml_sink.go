package datasync

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/lunaword/internal/library"
	"github.com/at-ishikawa/lunaword/internal/progress"
)

// SnapshotFileName is the file YAMLSink writes into its output directory.
const SnapshotFileName = "lunaword.yml"

// Snapshot is the YAML document of an export.
type Snapshot struct {
	Cards    []library.WordCard `yaml:"cards"`
	Username string             `yaml:"username,omitempty"`
	Progress []progress.Entry   `yaml:"progress,omitempty"`
}

// YAMLSink writes snapshots to a YAML file.
type YAMLSink struct {
	outputDir string
}

// NewYAMLSink creates a new YAMLSink.
func NewYAMLSink(outputDir string) *YAMLSink {
	return &YAMLSink{outputDir: outputDir}
}

// WriteAll writes the snapshot to lunaword.yml and returns the file path.
func (s *YAMLSink) WriteAll(snapshot *Snapshot) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", s.outputDir, err)
	}
	path := filepath.Join(s.outputDir, SnapshotFileName)
	if err := writeYAML(path, snapshot); err != nil {
		return "", fmt.Errorf("write %s: %w", SnapshotFileName, err)
	}
	return path, nil
}

// ReadSnapshot reads a snapshot written by YAMLSink.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var snapshot Snapshot
	if err := yaml.NewDecoder(f).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("yaml.Decode(%s) > %w", path, err)
	}
	return &snapshot, nil
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}
