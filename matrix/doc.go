// SPDX-License-Identifier: MIT

// Package matrix offers the dense numeric substrate of connstat.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Fit, the truncate-from-zero / pad-to-zero harmonization that maps
//     connectivity matrices of heterogeneous size onto one p×p shape.
//   - UpperTriangle / FromUpperTriangle / UpperPairs, the canonical row-major
//     flattening of the strict upper triangle used for edge-wise statistics.
//   - ReadDelimited / WriteDelimited for headerless comma- or
//     whitespace-separated matrix files.
//   - Validators (ValidateSquare, ValidateSymmetric, ValidateZeroDiagonal)
//     returning sentinel errors matched via errors.Is.
//
// Matrices here are small (tens to hundreds of nodes); every routine uses a
// fixed i→j traversal so results are bit-for-bit reproducible.
package matrix
