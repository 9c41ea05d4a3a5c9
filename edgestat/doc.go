// SPDX-License-Identifier: MIT

// Package edgestat compares two cohorts edge by edge.
//
// For every node pair (i,j) with i<j, Compare collects the (i,j) value of each
// case entity and each control entity and runs a two-sided Mann–Whitney U
// test (package ranksum). The p-value is written to both (i,j) and (j,i) of a
// fresh p×p matrix; the diagonal is zero.
//
// Degenerate edges (empty sample, or every pooled value identical) get the
// sentinel p-value 1.0 and are listed in Report.Degenerate. With
// WithFailOnDegenerate the first such edge aborts the comparison instead.
//
// Rows of the upper triangle are spread over a bounded errgroup; each worker
// writes only its own rows, so the output needs no locking.
package edgestat
