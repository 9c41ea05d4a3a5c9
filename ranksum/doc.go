// SPDX-License-Identifier: MIT

// Package ranksum implements the two-sample Mann–Whitney U test (Wilcoxon
// rank-sum test) for independent samples.
//
// The test compares two samples without assuming normality: the pooled data
// are ranked (ties receive the average of the ranks they span), and the rank
// sum of the first sample gives U1 = R1 − n1(n1+1)/2.
//
// P-value methods:
//
//   - Exact — the null distribution of U is enumerated by the recurrence
//     N(m,n,u) = N(m−1,n,u−n) + N(m,n−1,u). Valid only without ties.
//   - Asymptotic — normal approximation with tie-corrected variance
//     σ² = n1·n2/12 · ((N+1) − Σ(t³−t)/(N(N−1))) and an optional continuity
//     correction of 0.5.
//   - Auto (default) — exact when at least one sample has ≤ 8 values and
//     there are no ties, asymptotic otherwise.
//
// Degenerate inputs (an empty sample, or all pooled values identical so the
// rank variance is zero) return ErrDegenerateSample instead of a p-value; the
// caller decides whether that becomes a sentinel or a failure.
//
// Complexity: O(N log N) for ranking, plus O(min(n1,n2)·n1·n2) for the exact
// distribution.
package ranksum
