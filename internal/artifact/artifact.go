// Package artifact persists finished report tables as CSV files on disk.
package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Store writes and reads report CSV artifacts under a single directory.
type Store struct {
	dir string
}

// NewStore ensures the artifact directory exists.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Put writes the records as <dir>/<reportID>.csv and returns the path.
// Called exactly once per job, at its terminal transition.
func (s *Store) Put(reportID string, records [][]string) (string, error) {
	path := filepath.Join(s.dir, reportID+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to flush report file: %w", err)
	}
	return path, nil
}

// Read returns the raw CSV text of a previously written artifact.
func (s *Store) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read report file: %w", err)
	}
	return string(b), nil
}
