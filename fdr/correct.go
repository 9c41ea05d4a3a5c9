// SPDX-License-Identifier: MIT

package fdr

import (
	"fmt"

	"github.com/katalvlaran/connstat/matrix"
)

// Correct adjusts the strict upper triangle of a square raw p-value matrix
// and returns a new symmetric matrix with zero diagonal. raw is not modified.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare.
//   - ErrEmptyInput when raw has fewer than two nodes.
//   - ErrInvalidPValue for an off-diagonal value outside [0, 1].
//
// Complexity: O(p² log p).
func Correct(raw matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)

	flat, err := matrix.UpperTriangle(raw)
	if err != nil {
		return nil, fmt.Errorf("fdr: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("%dx%d matrix: %w", raw.Rows(), raw.Cols(), ErrEmptyInput)
	}
	adjusted, err := Adjust(flat, o.Method)
	if err != nil {
		return nil, err
	}

	return matrix.FromUpperTriangle(adjusted, raw.Rows())
}
