// SPDX-License-Identifier: MIT

// Package connstat compares structural brain connectivity between two
// cohorts, one node pair at a time.
//
// 🚀 What is connstat?
//
//	A small, deterministic pipeline that takes one connectivity matrix per
//	subject and answers "which edges differ between patients and controls?":
//		• Loading: per-subject matrices from a BIDS derivative tree, harmonized to p×p
//		• Testing: two-sided Mann–Whitney U per edge, exact or tie-corrected normal
//		• Correction: Benjamini–Hochberg FDR (BY and Bonferroni on request)
//		• Extraction: the list of edges below alpha, as "Region 1,Region 2" CSV
//
// ✨ Guarantees
//
//   - Symmetric p-value matrices with a zero diagonal at every stage
//   - Bit-for-bit reproducible output: stable sorts, no random tie-breaking
//   - Missing subjects and shape mismatches are reported, never fatal
//   - Empty cohorts and empty correction inputs fail fast with the stage named
//
// Packages:
//
//	matrix/       — dense matrices, truncate/pad Fit, upper-triangle codec, delimited IO
//	ranksum/      — Mann–Whitney U test (exact and asymptotic)
//	cohort/       — matrix store: sources, group predicates, parallel load
//	edgestat/     — per-edge rank-sum engine
//	fdr/          — multiple-comparison correction
//	significance/ — significant edge extraction and CSV output
//	pipeline/     — Pending → Loaded → Tested → Corrected → Extracted state machine
//	config/       — YAML + CONNSTAT_* environment configuration
//	metrics/      — per-run Prometheus collectors
//	cmd/connstat/ — the command-line entry point
//
// Quick start:
//
//	connstat run --data-dir /data/study --group-rule contains:C --alpha 0.05
//
// writes corrected_p_values_matrix.csv and connections.csv to the output
// directory.
package connstat
