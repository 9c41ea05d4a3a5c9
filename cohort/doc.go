// SPDX-License-Identifier: MIT

// Package cohort loads per-subject connectivity matrices and partitions them
// into a case and a control cohort of one common shape.
//
// What it does:
//
//   - Resolves one matrix resource per entity identifier through a Source
//     (DirSource reads the BIDS derivative layout
//     sub-<id>/dwi/connectome/<file> from any fs.FS).
//   - Skips entities whose resource is missing and records them in the
//     LoadReport; a run tolerates partial data availability.
//   - Harmonizes every matrix to p×p with matrix.Fit (truncate-from-zero,
//     pad-to-zero) and records which entities were reshaped.
//   - Splits entities with an injected Predicate (true ⇒ control).
//
// Usage:
//
//	src := cohort.NewDirSource(os.DirFS(root), "connectome.csv")
//	store := cohort.NewStore(src, cohort.ContainsMarker("C"),
//		cohort.WithTargetShape(14), cohort.WithLogger(log))
//	cases, controls, report, err := store.Load(ctx, ids)
//
// Loading is parallel per entity; results land in per-index slots, so cohort
// order always follows the input identifier order.
package cohort
