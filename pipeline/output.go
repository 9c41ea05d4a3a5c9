// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/connstat/matrix"
	"github.com/katalvlaran/connstat/significance"
)

// Output file names written by WriteOutputs.
const (
	CorrectedFile   = "corrected_p_values_matrix.csv"
	RawFile         = "raw_p_values_matrix.csv"
	ConnectionsFile = "connections.csv"
)

// WriteOutputs writes the corrected matrix and the significant edge list to
// dir, plus the raw matrix when withRaw is set. dir is created if needed.
// It returns the written paths in write order.
func WriteOutputs(dir string, res *Result, withRaw bool) ([]string, error) {
	if res == nil || res.Corrected == nil {
		return nil, fmt.Errorf("pipeline: no result to write")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	var written []string
	write := func(name string, fn func(f *os.File) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
		if err = fn(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("pipeline: write %s: %w", path, err)
		}
		if err = f.Close(); err != nil {
			return fmt.Errorf("pipeline: close %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if err := write(CorrectedFile, func(f *os.File) error { return matrix.WriteDelimited(f, res.Corrected) }); err != nil {
		return written, err
	}
	if withRaw && res.Raw != nil {
		if err := write(RawFile, func(f *os.File) error { return matrix.WriteDelimited(f, res.Raw) }); err != nil {
			return written, err
		}
	}
	if err := write(ConnectionsFile, func(f *os.File) error { return significance.WriteCSV(f, res.Edges) }); err != nil {
		return written, err
	}

	return written, nil
}
