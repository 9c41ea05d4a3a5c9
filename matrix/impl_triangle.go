// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Flatten the strict upper triangle (i<j) of a square matrix into a
//     canonical row-major sequence and rebuild a symmetric matrix from one.
//
// Canonical order:
//   - (0,1), (0,2), …, (0,p-1), (1,2), …, (p-2,p-1).
//   - UpperTriangle, UpperPairs and FromUpperTriangle all share this order, so
//     a value extracted at position k is re-embedded at the same cell.

package matrix

import "fmt"

const (
	opUpperTriangle     = "UpperTriangle"
	opFromUpperTriangle = "FromUpperTriangle"
)

// TriangleLen returns p*(p-1)/2, the number of unique off-diagonal pairs.
// Non-positive p yields 0.
func TriangleLen(p int) int {
	if p <= 1 {
		return 0
	}

	return p * (p - 1) / 2
}

// UpperPairs enumerates every (i,j) with 0 <= i < j < p in canonical order.
// Complexity: O(p²).
func UpperPairs(p int) []Pair {
	pairs := make([]Pair, 0, TriangleLen(p))
	var i, j int
	for i = 0; i < p; i++ {
		for j = i + 1; j < p; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}

	return pairs
}

// UpperTriangle returns the strict upper triangle of a square matrix in
// canonical row-major order.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(p²), Space O(p²/2).
func UpperTriangle(m Matrix) ([]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opUpperTriangle, err)
	}
	p := m.Rows()
	out := make([]float64, 0, TriangleLen(p))

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < p; i++ {
			out = append(out, d.data[i*p+i+1:(i+1)*p]...)
		}

		return out, nil
	}

	var v float64
	var err error
	for i = 0; i < p; i++ {
		for j = i + 1; j < p; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opUpperTriangle, err)
			}
			out = append(out, v)
		}
	}

	return out, nil
}

// FromUpperTriangle builds a symmetric p×p matrix with zero diagonal from a
// canonical upper-triangle sequence: value k lands at (i,j) and (j,i).
//
// Errors:
//   - ErrInvalidDimensions (p <= 0), ErrTriangleLength, ErrNaNInf under the
//     default numeric policy.
//
// Complexity:
//   - Time O(p²), Space O(p²).
func FromUpperTriangle(values []float64, p int, opts ...Option) (*Dense, error) {
	if p <= 0 {
		return nil, matrixErrorf(opFromUpperTriangle, ErrInvalidDimensions)
	}
	if len(values) != TriangleLen(p) {
		return nil, fmt.Errorf("%s: got %d values for p=%d: %w", opFromUpperTriangle, len(values), p, ErrTriangleLength)
	}
	o := gatherOptions(opts...)
	out, err := newDenseWithPolicy(p, p, o.validateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opFromUpperTriangle, err)
	}

	var i, j int
	k := 0
	for i = 0; i < p; i++ {
		for j = i + 1; j < p; j++ {
			if err = out.Set(i, j, values[k]); err != nil {
				return nil, matrixErrorf(opFromUpperTriangle, err)
			}
			out.data[j*p+i] = values[k] // mirror; already policy-checked above
			k++
		}
	}

	return out, nil
}
