// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Harmonize matrices of heterogeneous shape onto one fixed p×p target.
//
// Policy (deterministic, lossy):
//   - Truncate-from-zero: rows/cols beyond p are dropped; the top-left block is kept.
//   - Pad-to-zero: a smaller input is embedded at the top-left of a zero p×p matrix.
//   - Each dimension is handled independently, so an r×c input with r>p and c<p
//     is truncated in rows and padded in columns.
//
// Determinism & Performance:
//   - Fixed i→j copy order; a single allocation for the result.
//   - Symmetric inputs stay symmetric: a leading principal submatrix of a
//     symmetric matrix is symmetric, and zero padding is mirrored by construction.

package matrix

import "fmt"

const opFit = "Fit"

// Fit returns a fresh p×p Dense holding the top-left min(r,p)×min(c,p) block
// of m, zero elsewhere, and reports whether the shape changed.
// Implementation:
//   - Stage 1: validate m non-nil and p > 0.
//   - Stage 2: allocate p×p zeros, inheriting the numeric policy of a *Dense input.
//   - Stage 3: copy the overlapping block (Dense fast-path; At fallback).
//
// Returns:
//   - *Dense: independent copy (never aliases m, even when no reshape happened).
//   - bool: true when m was not already p×p.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (p <= 0), wrapped At errors.
//
// Complexity:
//   - Time O(p²), Space O(p²).
func Fit(m Matrix, p int) (*Dense, bool, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, false, matrixErrorf(opFit, err)
	}
	if p <= 0 {
		return nil, false, matrixErrorf(opFit, ErrInvalidDimensions)
	}

	policy := DefaultValidateNaNInf
	if d, ok := m.(*Dense); ok {
		policy = d.validateNaNInf
	}
	out, err := newDenseWithPolicy(p, p, policy)
	if err != nil {
		return nil, false, matrixErrorf(opFit, err)
	}

	r, c := m.Rows(), m.Cols()
	rr, cc := min(r, p), min(c, p)
	changed := r != p || c != p

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < rr; i++ {
			copy(out.data[i*p:i*p+cc], d.data[i*c:i*c+cc])
		}

		return out, changed, nil
	}

	var v float64
	for i = 0; i < rr; i++ {
		for j = 0; j < cc; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, false, matrixErrorf(opFit, err)
			}
			out.data[i*p+j] = v
		}
	}

	return out, changed, nil
}

// matrixErrorf wraps an underlying error with the given operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
