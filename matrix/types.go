// SPDX-License-Identifier: MIT

// Package matrix: domain-facing types.
// This file intentionally contains ONLY the public Matrix interface and the
// small helper types shared by the dense kernels. Errors and options live in
// dedicated files (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid, ErrNaNInf under a strict
	// numeric policy.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}

// Pair is an ordered node pair (I, J) addressing one cell of a square matrix.
// Upper-triangle helpers always produce pairs with I < J.
type Pair struct {
	I int // row index
	J int // column index
}
