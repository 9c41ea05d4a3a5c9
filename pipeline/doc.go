// SPDX-License-Identifier: MIT

// Package pipeline drives one group comparison end to end:
//
//	Pending → Loaded → Tested → Corrected → Extracted
//	   any  → Failed (terminal)
//
// Loaded:    cohort.Store (or any Loader) produced both cohorts.
// Tested:    edgestat.Compare produced the raw p-value matrix.
// Corrected: fdr.Correct produced the adjusted matrix.
// Extracted: significance.Extract produced the significant edge list.
//
// States are never revisited. The first fatal error is returned as a
// *StageError and no later stage runs. Non-fatal outcomes (skipped and
// reshaped entities, degenerate edges) are collected in Result.Summary and
// logged once when the run completes. Every log line carries the run_id.
//
// WriteOutputs persists a Result as corrected_p_values_matrix.csv,
// connections.csv and, optionally, raw_p_values_matrix.csv.
package pipeline
