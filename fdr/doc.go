// SPDX-License-Identifier: MIT

// Package fdr adjusts edge p-values for multiple comparisons.
//
// Correct takes a symmetric raw p-value matrix, flattens its strict upper
// triangle in canonical row-major order (matrix.UpperTriangle), adjusts the
// sequence and re-embeds it symmetrically (matrix.FromUpperTriangle). The
// diagonal stays zero.
//
// Methods:
//
//	MethodBH          Benjamini–Hochberg step-up (default)
//	MethodBY          Benjamini–Yekutieli, BH scaled by c(m) = Σ 1/i
//	MethodBonferroni  min(1, p·m)
//
// Step-up methods enforce monotonicity: the adjusted value at sorted rank k is
// the minimum over all ranks l ≥ k of p(l)·m/l. Ties are broken by original
// position, so the output is bit-for-bit reproducible.
package fdr
